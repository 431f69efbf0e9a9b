package services

import (
	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"gorm.io/gorm"
)

// ReferenceService serves the location, commodity and master lookup
// tables. Read-only.
type ReferenceService interface {
	ListDivisions() ([]models.Division, error)
	ListDistricts(divisionID uint) ([]models.District, error)
	ListTehsils(districtID uint) ([]models.Tehsil, error)
	ListBlocks(districtID uint) ([]models.Block, error)
	ListCommodities() ([]models.Commodity, error)
	ListVarieties(commodityID uint) ([]models.CommodityVariety, error)
	ListEducationLevels() ([]models.EducationLevel, error)
}

type referenceService struct {
	db *gorm.DB
}

func NewReferenceService(db *gorm.DB) ReferenceService {
	return &referenceService{db: db}
}

func (s *referenceService) ListDivisions() ([]models.Division, error) {
	var divisions []models.Division
	if err := s.db.Order("division_name").Find(&divisions).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return divisions, nil
}

func (s *referenceService) ListDistricts(divisionID uint) ([]models.District, error) {
	var districts []models.District
	err := s.db.Where("division_id = ?", divisionID).
		Order("district_name").Find(&districts).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return districts, nil
}

func (s *referenceService) ListTehsils(districtID uint) ([]models.Tehsil, error) {
	var tehsils []models.Tehsil
	err := s.db.Where("district_id = ?", districtID).
		Order("tehsil_name").Find(&tehsils).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return tehsils, nil
}

func (s *referenceService) ListBlocks(districtID uint) ([]models.Block, error) {
	var blocks []models.Block
	err := s.db.Where("district_id = ?", districtID).
		Order("block_name").Find(&blocks).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return blocks, nil
}

func (s *referenceService) ListCommodities() ([]models.Commodity, error) {
	var commodities []models.Commodity
	if err := s.db.Find(&commodities).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return commodities, nil
}

func (s *referenceService) ListVarieties(commodityID uint) ([]models.CommodityVariety, error) {
	var varieties []models.CommodityVariety
	err := s.db.Where("commodity_id = ?", commodityID).Find(&varieties).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return varieties, nil
}

func (s *referenceService) ListEducationLevels() ([]models.EducationLevel, error) {
	var levels []models.EducationLevel
	if err := s.db.Find(&levels).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return levels, nil
}
