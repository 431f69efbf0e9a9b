package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/agrisetu/farmlink-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBService handles database connection and lifecycle management.
type DBService interface {
	GetDB() *gorm.DB
	Close() error
}

type dbService struct {
	db *gorm.DB
}

// NewSqliteDBService opens (or creates) a SQLite database at dbPath and
// runs migrations. Use ":memory:" for tests.
func NewSqliteDBService(dbPath string) (DBService, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newDBService(db)
}

// NewPostgresDBService connects to Postgres using the given URL and runs
// migrations.
func NewPostgresDBService(postgresURL string) (DBService, error) {
	if postgresURL == "" {
		return nil, fmt.Errorf("postgres url is empty")
	}

	db, err := gorm.Open(postgres.Open(postgresURL), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newDBService(db)
}

func newDBService(db *gorm.DB) (DBService, error) {
	service := &dbService{db: db}
	if err := service.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return service, nil
}

// Only log errors and slow queries.
func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GetDB returns the underlying GORM database instance.
func (s *dbService) GetDB() *gorm.DB {
	return s.db
}

func (s *dbService) migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Division{},
		&models.District{},
		&models.Tehsil{},
		&models.Block{},
		&models.Commodity{},
		&models.CommodityVariety{},
		&models.EducationLevel{},
		&models.ProduceUnit{},
		&models.Farm{},
		&models.Contract{},
		&models.ContractImage{},
		&models.ImageRequest{},
	)
}

// Close closes the database connection.
func (s *dbService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
