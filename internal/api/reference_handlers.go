package api

import (
	"errors"

	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleListDivisions(c *fiber.Ctx) error {
	divisions, err := s.reference.ListDivisions()
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"divisions": divisions})
}

func (s *APIServer) handleListDistricts(c *fiber.Ctx) error {
	divisionID, err := c.ParamsInt("division_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid division id")))
	}

	districts, err := s.reference.ListDistricts(uint(divisionID))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"districts": districts})
}

func (s *APIServer) handleListTehsils(c *fiber.Ctx) error {
	districtID, err := c.ParamsInt("district_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid district id")))
	}

	tehsils, err := s.reference.ListTehsils(uint(districtID))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"tehsils": tehsils})
}

func (s *APIServer) handleListBlocks(c *fiber.Ctx) error {
	districtID, err := c.ParamsInt("district_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid district id")))
	}

	blocks, err := s.reference.ListBlocks(uint(districtID))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"blocks": blocks})
}

func (s *APIServer) handleListCommodities(c *fiber.Ctx) error {
	commodities, err := s.reference.ListCommodities()
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"commodities": commodities})
}

func (s *APIServer) handleListVarieties(c *fiber.Ctx) error {
	commodityID, err := c.ParamsInt("commodity_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid commodity id")))
	}

	varieties, err := s.reference.ListVarieties(uint(commodityID))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"varieties": varieties})
}

func (s *APIServer) handleListEducationLevels(c *fiber.Ctx) error {
	levels, err := s.reference.ListEducationLevels()
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"education_levels": levels})
}
