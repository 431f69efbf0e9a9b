package api

import (
	"github.com/agrisetu/farmlink-backend/internal/api/middleware"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleListAvailableContracts(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	filter := services.LocationFilter{
		Division: uint(c.QueryInt("division")),
		District: uint(c.QueryInt("district")),
		Tehsil:   uint(c.QueryInt("tehsil")),
		Block:    uint(c.QueryInt("block")),
	}

	status := c.Query("status", "open")
	contracts, err := s.trader.ListAvailable(user.UserID, status, filter)
	if err != nil {
		return s.respondError(c, err)
	}

	views := make([]fiber.Map, 0, len(contracts))
	for i := range contracts {
		views = append(views, formatAvailableContract(&contracts[i]))
	}
	return c.JSON(fiber.Map{"contracts": views})
}

func (s *APIServer) handleTraderGetContract(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	contract, err := s.trader.GetContract(user.UserID, c.Params("contract_id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"contract": formatAvailableContract(contract)})
}
