package api

import (
	"fmt"
	"net"

	"github.com/agrisetu/farmlink-backend/internal/api/middleware"
	"github.com/agrisetu/farmlink-backend/internal/logger"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/agrisetu/farmlink-backend/internal/storage"
	"github.com/agrisetu/farmlink-backend/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

type APIServer struct {
	app  *fiber.App
	log  *logger.Logger
	port int

	authenticator *utils.JwtAuthenticator
	authService   services.AuthService
	contracts     services.ContractService
	trader        services.TraderService
	farms         services.FarmService
	images        services.ImageService
	reference     services.ReferenceService
	store         storage.FileStore
}

func NewAPIServer(
	log *logger.Logger,
	authenticator *utils.JwtAuthenticator,
	authService services.AuthService,
	contracts services.ContractService,
	trader services.TraderService,
	farms services.FarmService,
	images services.ImageService,
	reference services.ReferenceService,
	store storage.FileStore,
) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             32 << 20, // multipart image batches
	})

	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	server := &APIServer{
		app:           app,
		log:           log,
		authenticator: authenticator,
		authService:   authService,
		contracts:     contracts,
		trader:        trader,
		farms:         farms,
		images:        images,
		reference:     reference,
		store:         store,
	}
	server.SetupRoutes()
	return server
}

func (s *APIServer) SetupRoutes() {
	auth := middleware.AuthMiddleware(middleware.AuthConfig{
		Authenticator: s.authenticator,
		AuthService:   s.authService,
	})

	// Auth
	s.app.Post("/auth/login", s.handleLogin)
	s.app.Post("/auth/signup", s.handleSignup)
	s.app.Post("/auth/signup/details/:user_id", s.handleSignupDetails)
	s.app.Get("/auth/me", auth, s.handleMe)
	s.app.Put("/auth/profile", auth, s.handleUpdateProfile)

	// Farmer-side contracts
	s.app.Post("/contracts", auth, s.handleCreateContract)
	s.app.Get("/contracts", auth, s.handleListContracts)
	s.app.Get("/contracts/form-data", auth, s.handleContractFormData)
	s.app.Get("/contracts/images/:filename", auth, s.handleServeImage)
	s.app.Get("/contracts/:contract_id", auth, s.handleGetContract)
	s.app.Post("/contracts/:contract_id/cancel", auth, s.handleCancelContract)
	s.app.Post("/contracts/:contract_id/fulfill", auth, s.handleFulfillContract)
	s.app.Post("/contracts/:contract_id/interest", auth, s.handleExpressInterest)
	s.app.Post("/contracts/:contract_id/accept/:trader_id", auth, s.handleAcceptTrader)

	// Contract image exchange
	s.app.Post("/contracts/:contract_id/images", auth, s.handleUploadImages)
	s.app.Get("/contracts/:contract_id/images", auth, s.handleListImages)
	s.app.Post("/contracts/:contract_id/image-request", auth, s.handleCreateImageRequest)
	s.app.Get("/contracts/:contract_id/image-request", auth, s.handleGetImageRequest)
	s.app.Post("/contracts/:contract_id/image-request/fulfill", auth, s.handleFulfillImageRequest)

	// Trader-side contracts
	s.app.Get("/trader/contracts/available", auth, s.handleListAvailableContracts)
	s.app.Post("/trader/contracts/:contract_id/interest", auth, s.handleExpressInterest)
	s.app.Post("/trader/contracts/:contract_id/accept-trader/:trader_id", auth, s.handleAcceptTrader)
	s.app.Get("/trader/contracts/:contract_id", auth, s.handleTraderGetContract)

	// Farms
	s.app.Get("/farms", auth, s.handleListFarms)
	s.app.Get("/farms/:farm_id", auth, s.handleGetFarm)
	s.app.Post("/farms", auth, s.handleCreateFarm)
	s.app.Delete("/farms/:farm_id", auth, s.handleDeleteFarm)

	// Reference data
	s.app.Get("/locations/divisions", s.handleListDivisions)
	s.app.Get("/locations/divisions/:division_id/districts", s.handleListDistricts)
	s.app.Get("/locations/districts/:district_id/tehsils", s.handleListTehsils)
	s.app.Get("/locations/districts/:district_id/blocks", s.handleListBlocks)
	s.app.Get("/commodities", s.handleListCommodities)
	s.app.Get("/commodities/:commodity_id/varieties", s.handleListVarieties)
	s.app.Get("/master/education", s.handleListEducationLevels)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// Start listens on the given port, or on a random available port when
// port is nil. Returns the bound port.
func (s *APIServer) Start(port *int) (int, error) {
	bound := 0
	if port != nil {
		bound = *port
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", bound))
	if err != nil {
		return 0, fmt.Errorf("failed to listen on port %d: %w", bound, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	go func() {
		if err := s.app.Listener(listener); err != nil {
			s.log.Error("api server stopped", "error", err)
		}
	}()

	return s.port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// App exposes the underlying Fiber app for in-process testing.
func (s *APIServer) App() *fiber.App {
	return s.app
}
