package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"gorm.io/gorm"
)

// LocationFilter narrows the trader listing by farm location. All fields
// are optional and combine with AND.
type LocationFilter struct {
	Division uint
	District uint
	Tehsil   uint
	Block    uint
}

// TraderService is the trader-side read surface over contracts. It
// enforces the visibility boundary: open contracts from other farmers,
// negotiating contracts only for the accepted trader, terminal contracts
// never.
type TraderService interface {
	ListAvailable(traderID uint, status string, filter LocationFilter) ([]models.Contract, error)
	GetContract(traderID uint, contractID string) (*models.Contract, error)
}

type traderService struct {
	db *gorm.DB
}

func NewTraderService(db *gorm.DB) TraderService {
	return &traderService{db: db}
}

// ListAvailable returns contracts a trader may act on, newest first.
// status=open lists open contracts not authored by the caller;
// status=negotiating lists only contracts where the caller is the
// accepted trader; any other status yields an empty list.
func (s *traderService) ListAvailable(traderID uint, status string, filter LocationFilter) ([]models.Contract, error) {
	query := s.db.Model(&models.Contract{}).
		Preload("Farm").Preload("Farm.Division").Preload("Farm.District").
		Preload("Farm.Tehsil").Preload("Farm.Block").
		Preload("Commodity").Preload("Variety").Preload("Owner").
		Joins("JOIN m_farm ON m_farm.farm_id = contracts.farm_id").
		Where("contracts.user_id != ?", traderID)

	switch strings.ToLower(status) {
	case "", string(models.ContractStatusOpen):
		query = query.Where("contracts.contract_status = ?", models.ContractStatusOpen)
	case string(models.ContractStatusNegotiating):
		query = query.Where("contracts.contract_status = ? AND contracts.trader_user_id = ?",
			models.ContractStatusNegotiating, traderID)
	default:
		// Terminal and unknown statuses are hidden from traders.
		return []models.Contract{}, nil
	}

	if filter.Division != 0 {
		query = query.Where("m_farm.farm_division = ?", filter.Division)
	}
	if filter.District != 0 {
		query = query.Where("m_farm.farm_district = ?", filter.District)
	}
	if filter.Tehsil != 0 {
		query = query.Where("m_farm.farm_tehsil = ?", filter.Tehsil)
	}
	if filter.Block != 0 {
		query = query.Where("m_farm.farm_block = ?", filter.Block)
	}

	var contracts []models.Contract
	if err := query.Order("contracts.created_at DESC").Find(&contracts).Error; err != nil {
		return nil, apierr.Internal(err)
	}
	return contracts, nil
}

// GetContract loads one contract for a trader. A negotiating contract is
// only visible to its accepted trader.
func (s *traderService) GetContract(traderID uint, contractID string) (*models.Contract, error) {
	var contract models.Contract
	err := s.db.
		Preload("Farm").Preload("Farm.Division").Preload("Farm.District").
		Preload("Farm.Tehsil").Preload("Farm.Block").
		Preload("Commodity").Preload("Variety").Preload("Owner").
		Where("contract_id = ?", contractID).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("contract %s not found", contractID))
		}
		return nil, apierr.Internal(err)
	}

	if contract.ContractStatus == models.ContractStatusNegotiating {
		if contract.TraderUserID == nil || *contract.TraderUserID != traderID {
			return nil, apierr.Forbidden(fmt.Errorf("user %d is not the accepted trader of %s", traderID, contractID))
		}
	}
	return &contract, nil
}
