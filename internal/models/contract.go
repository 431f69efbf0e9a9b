package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contract is a farmer's supply contract. The row keeps its negotiation
// ledger inline in the negotiations column; status moves through
// open -> negotiating -> {fulfilled, cancelled} and rows are never
// hard-deleted (cancel is a status transition).
type Contract struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ContractID   string `gorm:"uniqueIndex;not null;column:contract_id" json:"contract_id"`
	UserID       uint   `gorm:"index;not null;column:user_id" json:"user_id"`
	TraderUserID *uint  `gorm:"index;column:trader_user_id" json:"trader_user_id"`
	FarmID       uint   `gorm:"not null;column:farm_id" json:"farm_id"`

	CommodityID        uint           `gorm:"not null;column:commodity_id" json:"commodity_id"`
	VarietyID          uint           `gorm:"not null;column:variety_id" json:"variety_id"`
	CommodityQuality   string         `json:"commodity_quality"`
	CropQuantityAmount *float64       `json:"crop_quantity_amount"`
	CropQuantityUnit   *string        `json:"crop_quantity_unit"`
	ExpectedYield      *string        `json:"expected_yield"`
	QualityParameters  datatypes.JSON `json:"quality_parameters"`

	PlantingDate       *string        `json:"planting_date"`
	HarvestingDate     *string        `json:"harvesting_date"`
	Season             *string        `json:"season"`
	FarmingTechniques  datatypes.JSON `json:"farming_techniques"`
	FertilizersUsed    datatypes.JSON `json:"fertilizers_used"`
	PesticidesUsed     datatypes.JSON `json:"pesticides_used"`
	IrrigationSchedule *string        `json:"irrigation_schedule"`

	BasePrice           *float64 `json:"base_price"`
	PriceUnit           *string  `json:"price_unit"`
	TotalEstimatedValue *float64 `json:"total_estimated_value"`

	AdvancePaymentAmount     *float64 `json:"advance_payment_amount"`
	AdvancePaymentPercentage *float64 `json:"advance_payment_percentage"`
	AdvancePaymentDueDate    *string  `json:"advance_payment_due_date"`
	AdvancePaymentStatus     *string  `json:"advance_payment_status"`
	FinalPaymentAmount       *float64 `json:"final_payment_amount"`
	FinalPaymentDueDate      *string  `json:"final_payment_due_date"`
	FinalPaymentStatus       *string  `json:"final_payment_status"`

	LogisticsResponsibility *string  `json:"logistics_responsibility"`
	PickupLocation          *string  `json:"pickup_location"`
	DeliveryLocation        *string  `json:"delivery_location"`
	TransportationCost      *float64 `json:"transportation_cost"`
	PackagingRequirements   *string  `json:"packaging_requirements"`
	DeliverySchedule        *string  `json:"delivery_schedule"`

	LaborResponsibility *string        `json:"labor_responsibility"`
	TechnicalSupport    datatypes.JSON `json:"technical_support"`
	ExpertVisits        datatypes.JSON `json:"expert_visits"`

	FarmImages datatypes.JSON `json:"farm_images"`
	FarmVideos datatypes.JSON `json:"farm_videos"`
	Documents  datatypes.JSON `json:"documents"`

	ContractStatus ContractStatus  `gorm:"not null;default:open;column:contract_status" json:"contract_status"`
	Negotiations   NegotiationList `gorm:"type:text" json:"negotiations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Farm      Farm             `gorm:"foreignKey:FarmID;references:FarmID" json:"farm,omitempty"`
	Commodity Commodity        `gorm:"foreignKey:CommodityID;references:CommodityID" json:"commodity,omitempty"`
	Variety   CommodityVariety `gorm:"foreignKey:VarietyID;references:VarietyID" json:"variety,omitempty"`
	Owner     User             `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
