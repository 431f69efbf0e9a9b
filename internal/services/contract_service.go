package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/agrisetu/farmlink-backend/internal/utils"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CropQuantity struct {
	Amount *float64 `json:"amount" validate:"required"`
	Unit   *string  `json:"unit" validate:"required"`
}

type CropDetails struct {
	CommodityID       uint           `json:"commodityId" validate:"required"`
	VarietyID         uint           `json:"varietyId" validate:"required"`
	Quality           string         `json:"quality"`
	ExpectedYield     *string        `json:"expectedYield"`
	Quantity          CropQuantity   `json:"quantity" validate:"required"`
	QualityParameters datatypes.JSON `json:"qualityParameters"`
}

type FarmingDetails struct {
	PlantingDate       *string        `json:"plantingDate"`
	HarvestingDate     *string        `json:"harvestingDate"`
	Season             *string        `json:"season"`
	FarmingTechniques  datatypes.JSON `json:"farmingTechniques"`
	FertilizersUsed    datatypes.JSON `json:"fertilizersUsed"`
	PesticidesUsed     datatypes.JSON `json:"pesticidesUsed"`
	IrrigationSchedule *string        `json:"irrigationSchedule"`
}

type AdvancePayment struct {
	Amount     *float64 `json:"amount"`
	Percentage *float64 `json:"percentage"`
	DueDate    *string  `json:"dueDate"`
}

type Pricing struct {
	BasePrice      *float64       `json:"basePrice" validate:"required"`
	PriceUnit      *string        `json:"priceUnit" validate:"required"`
	AdvancePayment AdvancePayment `json:"advancePayment"`
}

type Logistics struct {
	Responsibility        *string  `json:"responsibility"`
	PickupLocation        *string  `json:"pickupLocation"`
	DeliveryLocation      *string  `json:"deliveryLocation"`
	TransportationCost    *float64 `json:"transportationCost"`
	PackagingRequirements *string  `json:"packagingRequirements"`
	DeliverySchedule      *string  `json:"deliverySchedule"`
}

type LaborAndSupport struct {
	LaborResponsibility *string        `json:"laborResponsibility"`
	TechnicalSupport    datatypes.JSON `json:"technicalSupport"`
	ExpertVisits        datatypes.JSON `json:"expertVisits"`
}

type MediaFiles struct {
	FarmImages datatypes.JSON `json:"farmImages"`
	FarmVideos datatypes.JSON `json:"farmVideos"`
	Documents  datatypes.JSON `json:"documents"`
}

type CreateContractRequest struct {
	FarmID          uint            `json:"farm" validate:"required"`
	CropDetails     CropDetails     `json:"cropDetails" validate:"required"`
	FarmingDetails  FarmingDetails  `json:"farmingDetails"`
	Pricing         Pricing         `json:"pricing" validate:"required"`
	Logistics       Logistics       `json:"logistics"`
	LaborAndSupport LaborAndSupport `json:"laborAndSupport"`
	MediaFiles      MediaFiles      `json:"mediaFiles"`
}

// NegotiationView is a ledger event enriched with the trader's display
// data. Built at read time only, never written back to the row.
type NegotiationView struct {
	models.NegotiationEvent
	TraderName   string `json:"trader_name,omitempty"`
	TraderMobile string `json:"trader_mobile,omitempty"`
}

// ContractService owns the contract lifecycle: creation, the negotiation
// ledger, status transitions and the farmer-side reads. Every mutation
// runs a locked read-modify-write on the contract row.
type ContractService interface {
	CreateContract(caller *models.User, req CreateContractRequest) (*models.Contract, error)
	ListContracts(ownerID uint, status string) ([]models.Contract, error)
	GetContract(contractID string) (*models.Contract, []NegotiationView, error)
	ExpressInterest(caller *models.User, contractID string) error
	AcceptTrader(caller *models.User, contractID string, traderID uint) error
	CancelContract(caller *models.User, contractID string) error
	FulfillContract(caller *models.User, contractID string) error
	FormData(ownerID uint) (*ContractFormData, error)
}

// ContractFormData bundles the reference lists the contract form needs.
type ContractFormData struct {
	Farms       []models.Farm             `json:"farms"`
	Commodities []models.Commodity        `json:"commodities"`
	Varieties   []models.CommodityVariety `json:"varieties"`
	Units       []models.ProduceUnit      `json:"units"`
}

type contractService struct {
	db        *gorm.DB
	validator *validator.Validate
}

func NewContractService(db *gorm.DB) ContractService {
	return &contractService{db: db, validator: validator.New()}
}

// CreateContract creates a contract in the open state with an empty
// ledger. Farmer-only; the farm must belong to the caller.
func (s *contractService) CreateContract(caller *models.User, req CreateContractRequest) (*models.Contract, error) {
	if caller.UserType != models.UserRoleFarmer {
		return nil, apierr.Forbidden(fmt.Errorf("user %d is not a farmer", caller.UserID))
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apierr.Validation(err)
	}

	var farm models.Farm
	err := s.db.Where("farm_id = ? AND user_id = ?", req.FarmID, caller.UserID).First(&farm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Forbidden(fmt.Errorf("farm %d does not belong to user %d", req.FarmID, caller.UserID))
		}
		return nil, apierr.Internal(err)
	}

	quality := req.CropDetails.Quality
	if quality == "" {
		quality = "standard"
	}

	contract := models.Contract{
		ContractID: utils.NewContractID(caller.UserID),
		UserID:     caller.UserID,
		FarmID:     req.FarmID,

		CommodityID:        req.CropDetails.CommodityID,
		VarietyID:          req.CropDetails.VarietyID,
		CommodityQuality:   quality,
		CropQuantityAmount: req.CropDetails.Quantity.Amount,
		CropQuantityUnit:   req.CropDetails.Quantity.Unit,
		ExpectedYield:      req.CropDetails.ExpectedYield,
		QualityParameters:  orEmptyObject(req.CropDetails.QualityParameters),

		PlantingDate:       req.FarmingDetails.PlantingDate,
		HarvestingDate:     req.FarmingDetails.HarvestingDate,
		Season:             req.FarmingDetails.Season,
		FarmingTechniques:  orEmptyList(req.FarmingDetails.FarmingTechniques),
		FertilizersUsed:    orEmptyList(req.FarmingDetails.FertilizersUsed),
		PesticidesUsed:     orEmptyList(req.FarmingDetails.PesticidesUsed),
		IrrigationSchedule: req.FarmingDetails.IrrigationSchedule,

		BasePrice: req.Pricing.BasePrice,
		PriceUnit: req.Pricing.PriceUnit,

		AdvancePaymentAmount:     req.Pricing.AdvancePayment.Amount,
		AdvancePaymentPercentage: req.Pricing.AdvancePayment.Percentage,
		AdvancePaymentDueDate:    req.Pricing.AdvancePayment.DueDate,

		LogisticsResponsibility: req.Logistics.Responsibility,
		PickupLocation:          req.Logistics.PickupLocation,
		DeliveryLocation:        req.Logistics.DeliveryLocation,
		TransportationCost:      req.Logistics.TransportationCost,
		PackagingRequirements:   req.Logistics.PackagingRequirements,
		DeliverySchedule:        req.Logistics.DeliverySchedule,

		LaborResponsibility: req.LaborAndSupport.LaborResponsibility,
		TechnicalSupport:    orEmptyObject(req.LaborAndSupport.TechnicalSupport),
		ExpertVisits:        orEmptyObject(req.LaborAndSupport.ExpertVisits),

		FarmImages: orEmptyList(req.MediaFiles.FarmImages),
		FarmVideos: orEmptyList(req.MediaFiles.FarmVideos),
		Documents:  orEmptyList(req.MediaFiles.Documents),

		ContractStatus: models.ContractStatusOpen,
		Negotiations:   models.NegotiationList{},
	}

	if err := s.db.Create(&contract).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return &contract, nil
}

// ListContracts returns the caller's own contracts with their joined
// reference data, newest first.
func (s *contractService) ListContracts(ownerID uint, status string) ([]models.Contract, error) {
	query := s.db.Model(&models.Contract{}).
		Preload("Farm").Preload("Commodity").Preload("Variety").
		Where("user_id = ?", ownerID)

	if status != "" {
		parsed, err := models.ParseContractStatus(status)
		if err != nil {
			return nil, apierr.Validation(err)
		}
		query = query.Where("contract_status = ?", parsed)
	}

	var contracts []models.Contract
	if err := query.Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return contracts, nil
}

// GetContract loads one contract with joins and resolves the traders
// referenced by ledger events into the enriched ledger view.
func (s *contractService) GetContract(contractID string) (*models.Contract, []NegotiationView, error) {
	var contract models.Contract
	err := s.db.
		Preload("Farm").Preload("Farm.Division").Preload("Farm.District").
		Preload("Farm.Tehsil").Preload("Farm.Block").
		Preload("Commodity").Preload("Variety").Preload("Owner").
		Where("contract_id = ?", contractID).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierr.NotFound(fmt.Errorf("contract %s not found", contractID))
		}
		return nil, nil, apierr.Internal(err)
	}

	views, err := s.enrichNegotiations(contract.Negotiations)
	if err != nil {
		return nil, nil, err
	}
	return &contract, views, nil
}

func (s *contractService) enrichNegotiations(events models.NegotiationList) ([]NegotiationView, error) {
	views := make([]NegotiationView, 0, len(events))
	if len(events) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(events))
	seen := make(map[uint]bool)
	for _, e := range events {
		if !seen[e.TraderID] {
			seen[e.TraderID] = true
			ids = append(ids, e.TraderID)
		}
	}

	var traders []models.User
	if err := s.db.Where("user_id IN ?", ids).Find(&traders).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	byID := make(map[uint]models.User, len(traders))
	for _, t := range traders {
		byID[t.UserID] = t
	}

	for _, e := range events {
		view := NegotiationView{NegotiationEvent: e}
		if t, ok := byID[e.TraderID]; ok {
			view.TraderName = t.FullName
			view.TraderMobile = t.MobileNumber
		}
		views = append(views, view)
	}
	return views, nil
}

// lockContract loads the contract row under FOR UPDATE inside tx so the
// ledger read-modify-write cannot lose concurrent appends.
func lockContract(tx *gorm.DB, contractID string) (*models.Contract, error) {
	var contract models.Contract
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contract_id = ?", contractID).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("contract %s not found", contractID))
		}
		return nil, apierr.Internal(err)
	}
	return &contract, nil
}

// ExpressInterest appends a pending interest event for the calling
// trader. Appends are unconditional: repeated calls produce duplicate
// entries and no state transition happens.
func (s *contractService) ExpressInterest(caller *models.User, contractID string) error {
	if caller.UserType != models.UserRoleTrader {
		return apierr.Forbidden(fmt.Errorf("user %d is not a trader", caller.UserID))
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := lockContract(tx, contractID)
		if err != nil {
			return err
		}
		if contract.ContractStatus.IsTerminal() {
			return apierr.Conflict(fmt.Errorf("contract %s is %s", contractID, contract.ContractStatus))
		}

		ledger := append(contract.Negotiations, models.NegotiationEvent{
			TraderID:  caller.UserID,
			Type:      models.NegotiationTypeInterest,
			Status:    models.NegotiationStatusPending,
			Timestamp: time.Now().Format(time.RFC3339),
		})

		if err := tx.Model(&models.Contract{}).Where("contract_id = ?", contractID).
			Update("negotiations", ledger).Error; err != nil {
			return apierr.Internal(err)
		}
		return nil
	})
}

// AcceptTrader marks every ledger event of the given trader accepted,
// binds the trader to the contract and moves it to negotiating. Only the
// owning farmer may call it, and only while the contract is open or
// negotiating.
func (s *contractService) AcceptTrader(caller *models.User, contractID string, traderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := lockContract(tx, contractID)
		if err != nil {
			return err
		}
		if contract.UserID != caller.UserID {
			return apierr.Forbidden(fmt.Errorf("user %d does not own contract %s", caller.UserID, contractID))
		}
		if !contract.ContractStatus.CanTransitionTo(models.ContractStatusNegotiating) &&
			contract.ContractStatus != models.ContractStatusNegotiating {
			return apierr.Conflict(fmt.Errorf("contract %s is %s", contractID, contract.ContractStatus))
		}

		ledger := contract.Negotiations
		for i := range ledger {
			if ledger[i].TraderID == traderID {
				ledger[i].Status = models.NegotiationStatusAccepted
			}
		}

		if err := tx.Model(&models.Contract{}).Where("contract_id = ?", contractID).
			Updates(map[string]interface{}{
				"contract_status": models.ContractStatusNegotiating,
				"trader_user_id":  traderID,
				"negotiations":    ledger,
			}).Error; err != nil {
			return apierr.Internal(err)
		}
		return nil
	})
}

// CancelContract moves any non-terminal contract to cancelled. Cancel of
// a fulfilled or already-cancelled contract is refused.
func (s *contractService) CancelContract(caller *models.User, contractID string) error {
	return s.transition(caller, contractID, models.ContractStatusCancelled)
}

// FulfillContract closes a negotiating contract as fulfilled.
func (s *contractService) FulfillContract(caller *models.User, contractID string) error {
	return s.transition(caller, contractID, models.ContractStatusFulfilled)
}

func (s *contractService) transition(caller *models.User, contractID string, next models.ContractStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		contract, err := lockContract(tx, contractID)
		if err != nil {
			return err
		}
		if contract.UserID != caller.UserID {
			return apierr.Forbidden(fmt.Errorf("user %d does not own contract %s", caller.UserID, contractID))
		}
		if !contract.ContractStatus.CanTransitionTo(next) {
			return apierr.Conflict(fmt.Errorf("contract %s cannot move from %s to %s",
				contractID, contract.ContractStatus, next))
		}

		if err := tx.Model(&models.Contract{}).Where("contract_id = ?", contractID).
			Update("contract_status", next).Error; err != nil {
			return apierr.Internal(err)
		}
		return nil
	})
}

// FormData returns the caller's farms plus the commodity, variety and
// unit reference lists used by the contract creation form.
func (s *contractService) FormData(ownerID uint) (*ContractFormData, error) {
	data := &ContractFormData{}

	if err := s.db.Select("farm_id", "farm_name", "user_id").
		Where("user_id = ?", ownerID).Find(&data.Farms).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.db.Find(&data.Commodities).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.db.Find(&data.Varieties).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	if err := s.db.Find(&data.Units).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return data, nil
}

func orEmptyList(j datatypes.JSON) datatypes.JSON {
	if len(j) == 0 {
		return datatypes.JSON("[]")
	}
	return j
}

func orEmptyObject(j datatypes.JSON) datatypes.JSON {
	if len(j) == 0 {
		return datatypes.JSON("{}")
	}
	return j
}
