package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/agrisetu/farmlink-backend/internal/logger"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/agrisetu/farmlink-backend/internal/storage"
	"github.com/agrisetu/farmlink-backend/internal/utils"
	"github.com/stretchr/testify/suite"
)

type APIServerTestSuite struct {
	suite.Suite
	db         services.DBService
	apiServer  *APIServer
	serverPort int
}

func (suite *APIServerTestSuite) SetupSuite() {
	db, err := services.NewSqliteDBService(":memory:")
	suite.Require().NoError(err)
	suite.db = db

	store, err := storage.NewLocalStore(suite.T().TempDir())
	suite.Require().NoError(err)

	log := logger.NewNop()
	authenticator := utils.NewJwtAuthenticator("test-secret", time.Hour)

	apiServer := NewAPIServer(
		log,
		authenticator,
		services.NewAuthService(db.GetDB(), authenticator),
		services.NewContractService(db.GetDB()),
		services.NewTraderService(db.GetDB()),
		services.NewFarmService(db.GetDB()),
		services.NewImageService(db.GetDB(), store, log),
		services.NewReferenceService(db.GetDB()),
		store,
	)

	port, err := apiServer.Start(nil)
	suite.Require().NoError(err)
	suite.apiServer = apiServer
	suite.serverPort = port

	time.Sleep(100 * time.Millisecond)
}

func (suite *APIServerTestSuite) TearDownSuite() {
	if suite.apiServer != nil {
		suite.apiServer.Shutdown()
	}
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *APIServerTestSuite) url(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", suite.serverPort, path)
}

func (suite *APIServerTestSuite) request(method, path, token string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, suite.url(path), reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	if len(raw) > 0 {
		suite.Require().NoError(json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// signupAndLogin registers an account and returns its token and user id.
func (suite *APIServerTestSuite) signupAndLogin(name, mobile, role string) (string, uint) {
	status, body := suite.request(http.MethodPost, "/auth/signup", "", map[string]string{
		"full_name":     name,
		"mobile_number": mobile,
		"pass_key":      "secret123",
		"user_type":     role,
	})
	suite.Require().Equal(http.StatusCreated, status, "signup: %v", body)
	userID := uint(body["user_id"].(float64))

	status, body = suite.request(http.MethodPost, "/auth/login", "", map[string]string{
		"mobile_number": mobile,
		"pass_key":      "secret123",
	})
	suite.Require().Equal(http.StatusOK, status, "login: %v", body)
	return body["token"].(string), userID
}

func (suite *APIServerTestSuite) createFarm(token, name string) uint {
	status, body := suite.request(http.MethodPost, "/farms", token, map[string]interface{}{
		"farmName": name,
	})
	suite.Require().Equal(http.StatusCreated, status, "create farm: %v", body)
	return uint(body["farmId"].(float64))
}

func (suite *APIServerTestSuite) createContract(token string, farmID uint) string {
	// Commodity reference rows are seeded lazily per contract.
	db := suite.db.GetDB()
	suite.Require().NoError(db.Exec("INSERT INTO m_commodity (commodity_name) VALUES ('Wheat')").Error)
	var commodityID uint
	suite.Require().NoError(db.Raw("SELECT MAX(commodity_id) FROM m_commodity").Scan(&commodityID).Error)
	suite.Require().NoError(db.Exec("INSERT INTO m_commodity_variety (commodity_id, variety_name) VALUES (?, 'Durum')", commodityID).Error)
	var varietyID uint
	suite.Require().NoError(db.Raw("SELECT MAX(variety_id) FROM m_commodity_variety").Scan(&varietyID).Error)

	status, body := suite.request(http.MethodPost, "/contracts", token, map[string]interface{}{
		"farm": farmID,
		"cropDetails": map[string]interface{}{
			"commodityId": commodityID,
			"varietyId":   varietyID,
			"quantity":    map[string]interface{}{"amount": 500, "unit": "quintal"},
		},
		"pricing": map[string]interface{}{
			"basePrice": 2100,
			"priceUnit": "per quintal",
		},
	})
	suite.Require().Equal(http.StatusCreated, status, "create contract: %v", body)
	return body["contract_id"].(string)
}

func (suite *APIServerTestSuite) TestHealthCheck() {
	status, body := suite.request(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, status)
	suite.Equal("ok", body["status"])
}

func (suite *APIServerTestSuite) TestAuthFlow() {
	token, _ := suite.signupAndLogin("Auth Farmer", "9811110001", "farmer")

	// No token.
	status, body := suite.request(http.MethodGet, "/auth/me", "", nil)
	suite.Equal(http.StatusUnauthorized, status)
	suite.Equal("Unauthorized", body["message"])

	// Bad token.
	status, _ = suite.request(http.MethodGet, "/auth/me", "garbage", nil)
	suite.Equal(http.StatusUnauthorized, status)

	// Valid token.
	status, body = suite.request(http.MethodGet, "/auth/me", token, nil)
	suite.Equal(http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	suite.Equal("Auth Farmer", user["full_name"])
	suite.Equal("farmer", user["user_type"])

	// Duplicate signup conflicts.
	status, _ = suite.request(http.MethodPost, "/auth/signup", "", map[string]string{
		"full_name":     "Copy Cat",
		"mobile_number": "9811110001",
		"pass_key":      "x",
		"user_type":     "farmer",
	})
	suite.Equal(http.StatusConflict, status)
}

func (suite *APIServerTestSuite) TestContractLifecycle() {
	farmerToken, _ := suite.signupAndLogin("Lifecycle Farmer", "9811120001", "farmer")
	traderToken, traderID := suite.signupAndLogin("Lifecycle Trader", "9811120002", "trader")

	farmID := suite.createFarm(farmerToken, "Lifecycle Farm")
	contractID := suite.createContract(farmerToken, farmID)

	// Trader sees the open contract.
	status, body := suite.request(http.MethodGet, "/trader/contracts/available", traderToken, nil)
	suite.Require().Equal(http.StatusOK, status)
	listed := body["contracts"].([]interface{})
	suite.Require().NotEmpty(listed)

	// Trader expresses interest.
	status, _ = suite.request(http.MethodPost, "/trader/contracts/"+contractID+"/interest", traderToken, nil)
	suite.Require().Equal(http.StatusOK, status)

	// The farmer may not.
	status, _ = suite.request(http.MethodPost, "/contracts/"+contractID+"/interest", farmerToken, nil)
	suite.Equal(http.StatusForbidden, status)

	// Farmer sees the ledger with the trader resolved.
	status, body = suite.request(http.MethodGet, "/contracts/"+contractID, farmerToken, nil)
	suite.Require().Equal(http.StatusOK, status)
	contract := body["contract"].(map[string]interface{})
	suite.Equal("open", contract["contract_status"])
	negotiations := contract["negotiations"].([]interface{})
	suite.Require().Len(negotiations, 1)
	event := negotiations[0].(map[string]interface{})
	suite.Equal("Lifecycle Trader", event["trader_name"])
	suite.Equal("pending", event["status"])

	// Farmer accepts; the contract moves to negotiating.
	status, _ = suite.request(http.MethodPost,
		fmt.Sprintf("/contracts/%s/accept/%d", contractID, traderID), farmerToken, nil)
	suite.Require().Equal(http.StatusOK, status)

	status, body = suite.request(http.MethodGet, "/contracts/"+contractID, farmerToken, nil)
	suite.Require().Equal(http.StatusOK, status)
	contract = body["contract"].(map[string]interface{})
	suite.Equal("negotiating", contract["contract_status"])

	// The accepted trader still sees the contract.
	status, _ = suite.request(http.MethodGet, "/trader/contracts/"+contractID, traderToken, nil)
	suite.Equal(http.StatusOK, status)

	// Fulfill closes it; further transitions conflict.
	status, _ = suite.request(http.MethodPost, "/contracts/"+contractID+"/fulfill", farmerToken, nil)
	suite.Require().Equal(http.StatusOK, status)

	status, _ = suite.request(http.MethodPost, "/contracts/"+contractID+"/cancel", farmerToken, nil)
	suite.Equal(http.StatusConflict, status)
}

func (suite *APIServerTestSuite) TestImageExchange() {
	farmerToken, _ := suite.signupAndLogin("Image Farmer", "9811130001", "farmer")
	traderToken, traderID := suite.signupAndLogin("Image Trader", "9811130002", "trader")

	farmID := suite.createFarm(farmerToken, "Image Farm")
	contractID := suite.createContract(farmerToken, farmID)

	status, _ := suite.request(http.MethodPost, "/trader/contracts/"+contractID+"/interest", traderToken, nil)
	suite.Require().Equal(http.StatusOK, status)
	status, _ = suite.request(http.MethodPost,
		fmt.Sprintf("/contracts/%s/accept/%d", contractID, traderID), farmerToken, nil)
	suite.Require().Equal(http.StatusOK, status)

	// Trader requests images.
	status, _ = suite.request(http.MethodPost, "/contracts/"+contractID+"/image-request", traderToken, nil)
	suite.Require().Equal(http.StatusCreated, status)

	// Farmer uploads a photo.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var encoded bytes.Buffer
	suite.Require().NoError(png.Encode(&encoded, img))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("images", "field.png")
	suite.Require().NoError(err)
	_, err = part.Write(encoded.Bytes())
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, suite.url("/contracts/"+contractID+"/images"), &form)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+farmerToken)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	// Farmer marks the request fulfilled.
	status, _ = suite.request(http.MethodPost, "/contracts/"+contractID+"/image-request/fulfill", farmerToken, nil)
	suite.Require().Equal(http.StatusOK, status)

	// Both parties can list and fetch the file.
	status, body := suite.request(http.MethodGet, "/contracts/"+contractID+"/images", traderToken, nil)
	suite.Require().Equal(http.StatusOK, status)
	images := body["images"].([]interface{})
	suite.Require().Len(images, 1)
	fileName := images[0].(map[string]interface{})["file_name"].(string)

	fileReq, err := http.NewRequest(http.MethodGet, suite.url("/contracts/images/"+fileName), nil)
	suite.Require().NoError(err)
	fileReq.Header.Set("Authorization", "Bearer "+traderToken)
	fileResp, err := http.DefaultClient.Do(fileReq)
	suite.Require().NoError(err)
	defer fileResp.Body.Close()
	suite.Require().Equal(http.StatusOK, fileResp.StatusCode)

	served, err := io.ReadAll(fileResp.Body)
	suite.Require().NoError(err)
	suite.Equal(encoded.Bytes(), served)
}

func (suite *APIServerTestSuite) TestFarmCRUD() {
	token, _ := suite.signupAndLogin("Farm Owner", "9811140001", "farmer")
	otherToken, _ := suite.signupAndLogin("Farm Other", "9811140002", "farmer")

	farmID := suite.createFarm(token, "CRUD Farm")

	status, body := suite.request(http.MethodGet, "/farms", token, nil)
	suite.Require().Equal(http.StatusOK, status)
	farms := body["farms"].([]interface{})
	suite.Require().NotEmpty(farms)

	// Another farmer may not delete it.
	status, _ = suite.request(http.MethodDelete, fmt.Sprintf("/farms/%d", farmID), otherToken, nil)
	suite.Equal(http.StatusNotFound, status)

	status, _ = suite.request(http.MethodDelete, fmt.Sprintf("/farms/%d", farmID), token, nil)
	suite.Equal(http.StatusOK, status)

	status, _ = suite.request(http.MethodGet, fmt.Sprintf("/farms/%d", farmID), token, nil)
	suite.Equal(http.StatusNotFound, status)
}

func (suite *APIServerTestSuite) TestReferenceEndpoints() {
	db := suite.db.GetDB()
	suite.Require().NoError(db.Exec("INSERT INTO m_division (division_name) VALUES ('North')").Error)

	status, body := suite.request(http.MethodGet, "/locations/divisions", "", nil)
	suite.Require().Equal(http.StatusOK, status)
	divisions := body["divisions"].([]interface{})
	suite.Require().NotEmpty(divisions)
}

func TestAPIServerTestSuite(t *testing.T) {
	suite.Run(t, new(APIServerTestSuite))
}
