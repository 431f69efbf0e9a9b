package api

import (
	"encoding/json"
	"time"

	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// The contract views reproduce the original API's field names exactly,
// including the camelCase/snake_case duplicates clients already depend
// on.

func isoTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// jsonField renders a stored JSON column, defaulting empty columns to an
// empty array.
func jsonField(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return json.RawMessage("[]")
	}
	return json.RawMessage(j)
}

// jsonObjectField is jsonField with an object default.
func jsonObjectField(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return json.RawMessage("{}")
	}
	return json.RawMessage(j)
}

// formatContract is the farmer-side contract view. negotiations lets the
// single-contract read substitute the trader-enriched ledger; pass nil
// to render the raw ledger.
func formatContract(c *models.Contract, negotiations interface{}) fiber.Map {
	if negotiations == nil {
		negotiations = c.Negotiations
	}

	return fiber.Map{
		"id":              c.ID,
		"contractId":      c.ContractID,
		"contract_id":     c.ContractID,
		"contractStatus":  c.ContractStatus,
		"contract_status": c.ContractStatus,
		"createdAt":       isoTime(c.CreatedAt),
		"created_at":      isoTime(c.CreatedAt),
		"updatedAt":       isoTime(c.UpdatedAt),
		"updated_at":      isoTime(c.UpdatedAt),

		"cropDetails": fiber.Map{
			"commodityId":   c.CommodityID,
			"varietyId":     c.VarietyID,
			"quality":       c.CommodityQuality,
			"expectedYield": c.ExpectedYield,
			"quantity": fiber.Map{
				"amount": c.CropQuantityAmount,
				"unit":   c.CropQuantityUnit,
			},
			"qualityParameters": jsonObjectField(c.QualityParameters),
		},

		"farmingDetails": fiber.Map{
			"plantingDate":       c.PlantingDate,
			"harvestingDate":     c.HarvestingDate,
			"season":             c.Season,
			"farmingTechniques":  jsonField(c.FarmingTechniques),
			"fertilizersUsed":    jsonField(c.FertilizersUsed),
			"pesticidesUsed":     jsonField(c.PesticidesUsed),
			"irrigationSchedule": c.IrrigationSchedule,
		},

		"pricing": fiber.Map{
			"basePrice":           c.BasePrice,
			"priceUnit":           c.PriceUnit,
			"totalEstimatedValue": c.TotalEstimatedValue,
			"advancePayment": fiber.Map{
				"amount":     c.AdvancePaymentAmount,
				"percentage": c.AdvancePaymentPercentage,
				"dueDate":    c.AdvancePaymentDueDate,
				"status":     c.AdvancePaymentStatus,
			},
			"finalPayment": fiber.Map{
				"amount":  c.FinalPaymentAmount,
				"dueDate": c.FinalPaymentDueDate,
				"status":  c.FinalPaymentStatus,
			},
		},

		"logistics": fiber.Map{
			"responsibility":        c.LogisticsResponsibility,
			"pickupLocation":        c.PickupLocation,
			"deliveryLocation":      c.DeliveryLocation,
			"transportationCost":    c.TransportationCost,
			"packagingRequirements": c.PackagingRequirements,
			"deliverySchedule":      c.DeliverySchedule,
		},

		"laborAndSupport": fiber.Map{
			"laborResponsibility": c.LaborResponsibility,
			"technicalSupport":    jsonObjectField(c.TechnicalSupport),
			"expertVisits":        jsonObjectField(c.ExpertVisits),
		},

		"mediaFiles": fiber.Map{
			"farmImages": jsonField(c.FarmImages),
			"farmVideos": jsonField(c.FarmVideos),
			"documents":  jsonField(c.Documents),
		},

		"commodity": fiber.Map{"commodity_name": c.Commodity.CommodityName},
		"variety":   fiber.Map{"variety_name": c.Variety.VarietyName},

		"farm": fiber.Map{
			"farm_id":        c.Farm.FarmID,
			"farm_name":      c.Farm.FarmName,
			"farm_size_area": c.Farm.FarmSizeArea,
			"farm_size_unit": c.Farm.FarmSizeUnit,
		},

		"negotiations": negotiations,
	}
}

// formatAvailableContract is the trader-side view: a slimmer summary
// plus the farm location hierarchy used for filtering.
func formatAvailableContract(c *models.Contract) fiber.Map {
	var division, district, tehsil, block interface{}
	if c.Farm.Division != nil {
		division = fiber.Map{
			"division_id":   c.Farm.Division.DivisionID,
			"division_name": c.Farm.Division.DivisionName,
		}
	}
	if c.Farm.District != nil {
		district = fiber.Map{
			"district_id":   c.Farm.District.DistrictID,
			"district_name": c.Farm.District.DistrictName,
		}
	}
	if c.Farm.Tehsil != nil {
		tehsil = fiber.Map{
			"tehsil_id":   c.Farm.Tehsil.TehsilID,
			"tehsil_name": c.Farm.Tehsil.TehsilName,
		}
	}
	if c.Farm.Block != nil {
		block = fiber.Map{
			"block_id":   c.Farm.Block.BlockID,
			"block_name": c.Farm.Block.BlockName,
		}
	}

	return fiber.Map{
		"id":             c.ID,
		"contractId":     c.ContractID,
		"contractStatus": c.ContractStatus,
		"createdAt":      isoTime(c.CreatedAt),

		"commodity": fiber.Map{"commodity_name": c.Commodity.CommodityName},
		"variety":   fiber.Map{"variety_name": c.Variety.VarietyName},

		"cropDetails": fiber.Map{
			"quantity": fiber.Map{
				"amount": c.CropQuantityAmount,
				"unit":   c.CropQuantityUnit,
			},
			"quality": c.CommodityQuality,
		},

		"pricing": fiber.Map{
			"basePrice": c.BasePrice,
			"priceUnit": c.PriceUnit,
		},

		"farmingDetails": fiber.Map{
			"harvestingDate": c.HarvestingDate,
		},

		"farm": fiber.Map{
			"farm_id":   c.Farm.FarmID,
			"farm_name": c.Farm.FarmName,
			"division":  division,
			"district":  district,
			"tehsil":    tehsil,
			"block":     block,
		},

		"user": fiber.Map{
			"user_id":   c.Owner.UserID,
			"full_name": c.Owner.FullName,
		},

		"negotiations": c.Negotiations,
	}
}
