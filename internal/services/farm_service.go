package services

import (
	"errors"
	"fmt"

	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FarmSize struct {
	Area *float64 `json:"area"`
	Unit *string  `json:"unit"`
}

type SoilInformation struct {
	SoilType       *string  `json:"soilType"`
	PhLevel        *float64 `json:"phLevel"`
	OrganicMatter  *float64 `json:"organicMatter"`
	Nitrogen       *float64 `json:"nitrogen"`
	Phosphorus     *float64 `json:"phosphorus"`
	Potassium      *float64 `json:"potassium"`
	SoilTestDate   *string  `json:"soilTestDate"`
	SoilTestReport *string  `json:"soilTestReport"`
}

type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type FarmLocation struct {
	Coordinates Coordinates `json:"coordinates"`
}

type Facilities struct {
	StorageCapacity    *float64 `json:"storageCapacity"`
	StorageType        *string  `json:"storageType"`
	ProcessingFacility bool     `json:"processingFacility"`
	ColdStorage        bool     `json:"coldStorage"`
	PackingFacility    bool     `json:"packingFacility"`
	QualityTestingLab  bool     `json:"qualityTestingLab"`
}

type CreateFarmRequest struct {
	FarmName     string `json:"farmName" validate:"required"`
	FarmDivision *uint  `json:"farmDivision"`
	FarmDistrict *uint  `json:"farmDistrict"`
	FarmTehsil   *uint  `json:"farmTehsil"`
	FarmBlock    *uint  `json:"farmBlock"`

	Location        FarmLocation    `json:"location"`
	FarmSize        FarmSize        `json:"farmSize"`
	SoilInformation SoilInformation `json:"soilInformation"`
	Facilities      Facilities      `json:"facilities"`

	IrrigationSystem *string `json:"irrigationSystem"`
	WaterSource      *string `json:"waterSource"`

	FarmingTechniques datatypes.JSON `json:"farmingTechniques"`
	Certifications    datatypes.JSON `json:"certifications"`
	CurrentCrops      datatypes.JSON `json:"currentCrops"`
	FarmHistory       datatypes.JSON `json:"farmHistory"`
	FarmImages        datatypes.JSON `json:"farmImages"`
	FarmVideos        datatypes.JSON `json:"farmVideos"`
}

// FarmService is plain data access over farm records. Farms belong to
// exactly one user; only the owner may delete.
type FarmService interface {
	CreateFarm(ownerID uint, req CreateFarmRequest) (*models.Farm, error)
	ListFarms(ownerID uint) ([]models.Farm, error)
	GetFarm(farmID uint) (*models.Farm, error)
	DeleteFarm(ownerID, farmID uint) error
}

type farmService struct {
	db        *gorm.DB
	validator *validator.Validate
}

func NewFarmService(db *gorm.DB) FarmService {
	return &farmService{db: db, validator: validator.New()}
}

func (s *farmService) CreateFarm(ownerID uint, req CreateFarmRequest) (*models.Farm, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apierr.Validation(err)
	}

	farm := models.Farm{
		UserID:       ownerID,
		FarmName:     req.FarmName,
		FarmDivision: req.FarmDivision,
		FarmDistrict: req.FarmDistrict,
		FarmTehsil:   req.FarmTehsil,
		FarmBlock:    req.FarmBlock,

		LocationLatitude:  req.Location.Coordinates.Latitude,
		LocationLongitude: req.Location.Coordinates.Longitude,
		FarmSizeArea:      req.FarmSize.Area,
		FarmSizeUnit:      req.FarmSize.Unit,

		SoilType:          req.SoilInformation.SoilType,
		SoilPhLevel:       req.SoilInformation.PhLevel,
		SoilOrganicMatter: req.SoilInformation.OrganicMatter,
		SoilNitrogen:      req.SoilInformation.Nitrogen,
		SoilPhosphorus:    req.SoilInformation.Phosphorus,
		SoilPotassium:     req.SoilInformation.Potassium,
		SoilTestDate:      req.SoilInformation.SoilTestDate,
		SoilTestReport:    req.SoilInformation.SoilTestReport,

		IrrigationSystem: req.IrrigationSystem,
		WaterSource:      req.WaterSource,

		FarmingTechniques: orEmptyList(req.FarmingTechniques),
		Certifications:    orEmptyList(req.Certifications),
		CurrentCrops:      orEmptyList(req.CurrentCrops),
		FarmHistory:       orEmptyList(req.FarmHistory),

		FacilitiesStorageCapacity:    req.Facilities.StorageCapacity,
		FacilitiesStorageType:        req.Facilities.StorageType,
		FacilitiesProcessingFacility: req.Facilities.ProcessingFacility,
		FacilitiesColdStorage:        req.Facilities.ColdStorage,
		FacilitiesPackingFacility:    req.Facilities.PackingFacility,
		FacilitiesQualityTestingLab:  req.Facilities.QualityTestingLab,

		FarmImages: orEmptyList(req.FarmImages),
		FarmVideos: orEmptyList(req.FarmVideos),
	}

	if err := s.db.Create(&farm).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return &farm, nil
}

// ListFarms returns the owner's farms with location names, newest first.
func (s *farmService) ListFarms(ownerID uint) ([]models.Farm, error) {
	var farms []models.Farm
	err := s.db.Preload("District").Preload("Division").
		Where("user_id = ?", ownerID).
		Order("farm_id DESC").Find(&farms).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return farms, nil
}

func (s *farmService) GetFarm(farmID uint) (*models.Farm, error) {
	var farm models.Farm
	err := s.db.Preload("Division").Preload("District").
		Preload("Tehsil").Preload("Block").
		Where("farm_id = ?", farmID).First(&farm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("farm %d not found", farmID))
		}
		return nil, apierr.Internal(err)
	}
	return &farm, nil
}

// DeleteFarm removes a farm; only its owner may do so.
func (s *farmService) DeleteFarm(ownerID, farmID uint) error {
	result := s.db.Where("farm_id = ? AND user_id = ?", farmID, ownerID).Delete(&models.Farm{})
	if result.Error != nil {
		return apierr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apierr.NotFound(fmt.Errorf("farm %d not found for user %d", farmID, ownerID))
	}
	return nil
}
