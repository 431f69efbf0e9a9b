package server

import (
	"github.com/agrisetu/farmlink-backend/internal/config"
	"github.com/agrisetu/farmlink-backend/internal/logger"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/agrisetu/farmlink-backend/internal/storage"
	"github.com/agrisetu/farmlink-backend/internal/utils"
	"gorm.io/gorm"
)

// Services bundles every service the API server depends on.
type Services struct {
	Auth      services.AuthService
	Contracts services.ContractService
	Trader    services.TraderService
	Farms     services.FarmService
	Images    services.ImageService
	Reference services.ReferenceService
}

func InitializeServices(db *gorm.DB, store storage.FileStore, log *logger.Logger, cfg config.Config) (*Services, *utils.JwtAuthenticator) {
	authenticator := utils.NewJwtAuthenticator(cfg.JWTSecret, cfg.TokenTTL)

	svcs := &Services{
		Auth:      services.NewAuthService(db, authenticator),
		Contracts: services.NewContractService(db),
		Trader:    services.NewTraderService(db),
		Farms:     services.NewFarmService(db),
		Images:    services.NewImageService(db, store, log),
		Reference: services.NewReferenceService(db),
	}
	return svcs, authenticator
}
