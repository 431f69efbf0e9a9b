package models

import (
	"time"

	"gorm.io/datatypes"
)

// Farm holds a farmer's land record, including the location hierarchy
// used by trader-side contract filtering.
type Farm struct {
	FarmID uint `gorm:"primaryKey;column:farm_id" json:"farm_id"`
	UserID uint `gorm:"index;not null;column:user_id" json:"user_id"`

	FarmName     string `gorm:"not null" json:"farm_name"`
	FarmDivision *uint  `gorm:"column:farm_division" json:"farm_division"`
	FarmDistrict *uint  `gorm:"column:farm_district" json:"farm_district"`
	FarmTehsil   *uint  `gorm:"column:farm_tehsil" json:"farm_tehsil"`
	FarmBlock    *uint  `gorm:"column:farm_block" json:"farm_block"`

	LocationLatitude  *float64 `json:"location_latitude"`
	LocationLongitude *float64 `json:"location_longitude"`
	FarmSizeArea      *float64 `json:"farm_size_area"`
	FarmSizeUnit      *string  `json:"farm_size_unit"`

	SoilType          *string  `json:"soil_type"`
	SoilPhLevel       *float64 `gorm:"column:soil_ph_level" json:"soil_ph_level"`
	SoilOrganicMatter *float64 `json:"soil_organic_matter"`
	SoilNitrogen      *float64 `json:"soil_nitrogen"`
	SoilPhosphorus    *float64 `json:"soil_phosphorus"`
	SoilPotassium     *float64 `json:"soil_potassium"`
	SoilTestDate      *string  `json:"soil_test_date"`
	SoilTestReport    *string  `json:"soil_test_report"`

	IrrigationSystem *string `json:"irrigation_system"`
	WaterSource      *string `json:"water_source"`

	FarmingTechniques datatypes.JSON `json:"farming_techniques"`
	Certifications    datatypes.JSON `json:"certifications"`
	CurrentCrops      datatypes.JSON `json:"current_crops"`
	FarmHistory       datatypes.JSON `json:"farm_history"`

	FacilitiesStorageCapacity    *float64 `json:"facilities_storage_capacity"`
	FacilitiesStorageType        *string  `json:"facilities_storage_type"`
	FacilitiesProcessingFacility bool     `json:"facilities_processing_facility"`
	FacilitiesColdStorage        bool     `json:"facilities_cold_storage"`
	FacilitiesPackingFacility    bool     `json:"facilities_packing_facility"`
	FacilitiesQualityTestingLab  bool     `json:"facilities_quality_testing_lab"`

	FarmImages datatypes.JSON `json:"farm_images"`
	FarmVideos datatypes.JSON `json:"farm_videos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Division *Division `gorm:"foreignKey:FarmDivision;references:DivisionID" json:"division,omitempty"`
	District *District `gorm:"foreignKey:FarmDistrict;references:DistrictID" json:"district,omitempty"`
	Tehsil   *Tehsil   `gorm:"foreignKey:FarmTehsil;references:TehsilID" json:"tehsil,omitempty"`
	Block    *Block    `gorm:"foreignKey:FarmBlock;references:BlockID" json:"block,omitempty"`
}

func (Farm) TableName() string { return "m_farm" }
