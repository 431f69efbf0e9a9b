package api

import (
	"errors"

	"github.com/agrisetu/farmlink-backend/internal/api/middleware"
	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/models"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func farmSummary(f *models.Farm) fiber.Map {
	var division, district interface{}
	if f.Division != nil {
		division = fiber.Map{
			"division_id":   f.Division.DivisionID,
			"division_name": f.Division.DivisionName,
		}
	}
	if f.District != nil {
		district = fiber.Map{
			"district_id":   f.District.DistrictID,
			"district_name": f.District.DistrictName,
		}
	}

	return fiber.Map{
		"farm_id":        f.FarmID,
		"farm_name":      f.FarmName,
		"farm_size_area": f.FarmSizeArea,
		"farm_size_unit": f.FarmSizeUnit,
		"soil_type":      f.SoilType,
		"district":       district,
		"division":       division,
	}
}

func (s *APIServer) handleListFarms(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	farms, err := s.farms.ListFarms(user.UserID)
	if err != nil {
		return s.respondError(c, err)
	}

	views := make([]fiber.Map, 0, len(farms))
	for i := range farms {
		views = append(views, farmSummary(&farms[i]))
	}
	return c.JSON(fiber.Map{"farms": views})
}

func (s *APIServer) handleGetFarm(c *fiber.Ctx) error {
	farmID, err := c.ParamsInt("farm_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid farm id")))
	}

	farm, err := s.farms.GetFarm(uint(farmID))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"farm": farm})
}

func (s *APIServer) handleCreateFarm(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	var req services.CreateFarmRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid request body")))
	}

	farm, err := s.farms.CreateFarm(user.UserID, req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"farmId":  farm.FarmID,
		"message": "Farm created successfully",
	})
}

func (s *APIServer) handleDeleteFarm(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	farmID, err := c.ParamsInt("farm_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid farm id")))
	}

	if err := s.farms.DeleteFarm(user.UserID, uint(farmID)); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Farm deleted successfully"})
}
