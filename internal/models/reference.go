package models

// Location and commodity reference tables. These are lookup data only;
// nothing in the state machine writes them.

type Division struct {
	DivisionID   uint   `gorm:"primaryKey;column:division_id" json:"division_id"`
	DivisionName string `gorm:"not null" json:"division_name"`
}

func (Division) TableName() string { return "m_division" }

type District struct {
	DistrictID   uint   `gorm:"primaryKey;column:district_id" json:"district_id"`
	DivisionID   uint   `gorm:"index;column:division_id" json:"division_id"`
	DistrictName string `gorm:"not null" json:"district_name"`
}

func (District) TableName() string { return "m_district" }

type Tehsil struct {
	TehsilID   uint   `gorm:"primaryKey;column:tehsil_id" json:"tehsil_id"`
	DistrictID uint   `gorm:"index;column:district_id" json:"district_id"`
	TehsilName string `gorm:"not null" json:"tehsil_name"`
}

func (Tehsil) TableName() string { return "m_tehsil" }

type Block struct {
	BlockID    uint   `gorm:"primaryKey;column:block_id" json:"block_id"`
	DistrictID uint   `gorm:"index;column:district_id" json:"district_id"`
	BlockName  string `gorm:"not null" json:"block_name"`
}

func (Block) TableName() string { return "m_block" }

type Commodity struct {
	CommodityID   uint   `gorm:"primaryKey;column:commodity_id" json:"commodity_id"`
	CommodityName string `gorm:"not null" json:"commodity_name"`
}

func (Commodity) TableName() string { return "m_commodity" }

type CommodityVariety struct {
	VarietyID   uint   `gorm:"primaryKey;column:variety_id" json:"variety_id"`
	CommodityID uint   `gorm:"index;column:commodity_id" json:"commodity_id"`
	VarietyName string `gorm:"not null" json:"variety_name"`
}

func (CommodityVariety) TableName() string { return "m_commodity_variety" }

type EducationLevel struct {
	EducationLevelID uint   `gorm:"primaryKey;column:education_level_id" json:"education_level_id"`
	EducationLevel   string `gorm:"column:education_level" json:"education_level"`
}

func (EducationLevel) TableName() string { return "m_education_level" }

type ProduceUnit struct {
	UnitID   uint   `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	UnitName string `gorm:"not null" json:"unit_name"`
}

func (ProduceUnit) TableName() string { return "m_produce_unit" }
