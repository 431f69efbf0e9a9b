package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/agrisetu/farmlink-backend/internal/logger"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/agrisetu/farmlink-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pngBytes(t *testing.T, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type imageFixture struct {
	db       *gorm.DB
	images   ImageService
	farmer   *models.User
	trader   *models.User
	outsider *models.User
	contract *models.Contract
}

// newImageFixture builds a negotiating contract with an accepted trader,
// the state the image exchange operates in.
func newImageFixture(t *testing.T) *imageFixture {
	db := setupTestDB(t)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	contracts := NewContractService(db)
	images := NewImageService(db, store, logger.NewNop())

	farmer := createUser(t, db, "Farmer F", "9700000001", models.UserRoleFarmer)
	trader := createUser(t, db, "Trader T", "9700000002", models.UserRoleTrader)
	outsider := createUser(t, db, "Outsider O", "9700000003", models.UserRoleTrader)
	farm := createFarm(t, db, farmer.UserID)
	commodity, variety := createCommodity(t, db)

	contract, err := contracts.CreateContract(farmer, validContractRequest(farm.FarmID, commodity.CommodityID, variety.VarietyID))
	require.NoError(t, err)
	require.NoError(t, contracts.ExpressInterest(trader, contract.ContractID))
	require.NoError(t, contracts.AcceptTrader(farmer, contract.ContractID, trader.UserID))

	return &imageFixture{
		db:       db,
		images:   images,
		farmer:   farmer,
		trader:   trader,
		outsider: outsider,
		contract: contract,
	}
}

func TestImageRequestLifecycle(t *testing.T) {
	f := newImageFixture(t)
	contractID := f.contract.ContractID

	t.Run("accepted trader opens a request", func(t *testing.T) {
		request, err := f.images.CreateRequest(f.trader, contractID)
		require.NoError(t, err)
		assert.Equal(t, models.ImageRequestStatusPending, request.Status)
		assert.Equal(t, f.trader.UserID, request.RequestedBy)
	})

	t.Run("second pending request conflicts", func(t *testing.T) {
		_, err := f.images.CreateRequest(f.trader, contractID)
		assertStatus(t, err, 409)
	})

	t.Run("other traders may not request", func(t *testing.T) {
		_, err := f.images.CreateRequest(f.outsider, contractID)
		assertStatus(t, err, 403)
	})

	t.Run("get returns the latest request", func(t *testing.T) {
		request, err := f.images.GetRequest(contractID)
		require.NoError(t, err)
		assert.Equal(t, models.ImageRequestStatusPending, request.Status)
	})

	t.Run("only the owner fulfills", func(t *testing.T) {
		assertStatus(t, f.images.FulfillRequest(f.trader, contractID), 403)

		require.NoError(t, f.images.FulfillRequest(f.farmer, contractID))

		request, err := f.images.GetRequest(contractID)
		require.NoError(t, err)
		assert.Equal(t, models.ImageRequestStatusFulfilled, request.Status)
	})

	t.Run("fulfill without a pending request is not found", func(t *testing.T) {
		assertStatus(t, f.images.FulfillRequest(f.farmer, contractID), 404)
	})

	t.Run("a fulfilled request allows a new one", func(t *testing.T) {
		_, err := f.images.CreateRequest(f.trader, contractID)
		require.NoError(t, err)
	})

	t.Run("request on a non-negotiating contract conflicts", func(t *testing.T) {
		require.NoError(t, f.db.Model(&models.Contract{}).
			Where("contract_id = ?", contractID).
			Update("contract_status", models.ContractStatusFulfilled).Error)

		_, err := f.images.CreateRequest(f.trader, contractID)
		assertStatus(t, err, 409)
	})
}

func TestUploadImages(t *testing.T) {
	f := newImageFixture(t)
	contractID := f.contract.ContractID

	t.Run("valid images are stored with metadata", func(t *testing.T) {
		result, err := f.images.UploadImages(f.farmer, contractID, []UploadFile{
			{Name: "field.png", Data: pngBytes(t, 40, 30)},
			{Name: "harvest.png", Data: pngBytes(t, 20, 20)},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Uploaded)
		assert.Equal(t, 0, result.Skipped)

		stored, err := f.images.ListImages(contractID)
		require.NoError(t, err)
		require.Len(t, stored, 2)
		for _, img := range stored {
			assert.NotEmpty(t, img.Checksum)
			assert.NotEqual(t, img.OriginalName, img.FileName, "stored names are generated")
			assert.Equal(t, f.farmer.UserID, img.UploaderID)
		}
	})

	t.Run("dimensions come from the decoded image", func(t *testing.T) {
		_, err := f.images.UploadImages(f.trader, contractID, []UploadFile{
			{Name: "wide.png", Data: pngBytes(t, 64, 16)},
		})
		require.NoError(t, err)

		var img models.ContractImage
		require.NoError(t, f.db.Where("original_name = ?", "wide.png").First(&img).Error)
		assert.Equal(t, 64, img.Width)
		assert.Equal(t, 16, img.Height)
		assert.Equal(t, models.UserRoleTrader, img.UploaderRole)
	})

	t.Run("oversized and undecodable files are skipped, valid ones kept", func(t *testing.T) {
		oversized := bytes.Repeat([]byte{0xAB}, MaxImageBytes+1)

		result, err := f.images.UploadImages(f.farmer, contractID, []UploadFile{
			{Name: "big.png", Data: oversized},
			{Name: "junk.png", Data: []byte("definitely not an image")},
			{Name: "ok.png", Data: pngBytes(t, 10, 10)},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Uploaded)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("uninvolved users may not upload", func(t *testing.T) {
		_, err := f.images.UploadImages(f.outsider, contractID, []UploadFile{
			{Name: "x.png", Data: pngBytes(t, 5, 5)},
		})
		assertStatus(t, err, 403)
	})

	t.Run("upload to an unknown contract is not found", func(t *testing.T) {
		_, err := f.images.UploadImages(f.farmer, "C0000", nil)
		assertStatus(t, err, 404)
	})
}
