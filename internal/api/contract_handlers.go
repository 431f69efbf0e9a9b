package api

import (
	"errors"

	"github.com/agrisetu/farmlink-backend/internal/api/middleware"
	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleCreateContract(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	var req services.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid request body")))
	}

	contract, err := s.contracts.CreateContract(user, req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Contract created successfully!",
		"contract_id": contract.ContractID,
	})
}

func (s *APIServer) handleListContracts(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	contracts, err := s.contracts.ListContracts(user.UserID, c.Query("status"))
	if err != nil {
		return s.respondError(c, err)
	}

	views := make([]fiber.Map, 0, len(contracts))
	for i := range contracts {
		views = append(views, formatContract(&contracts[i], nil))
	}
	return c.JSON(fiber.Map{"contracts": views})
}

func (s *APIServer) handleGetContract(c *fiber.Ctx) error {
	contract, negotiations, err := s.contracts.GetContract(c.Params("contract_id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"contract": formatContract(contract, negotiations)})
}

func (s *APIServer) handleCancelContract(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	if err := s.contracts.CancelContract(user, c.Params("contract_id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contract cancelled"})
}

func (s *APIServer) handleFulfillContract(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	if err := s.contracts.FulfillContract(user, c.Params("contract_id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contract fulfilled"})
}

func (s *APIServer) handleExpressInterest(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	if err := s.contracts.ExpressInterest(user, c.Params("contract_id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Interest added successfully"})
}

func (s *APIServer) handleAcceptTrader(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	traderID, err := c.ParamsInt("trader_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid trader id")))
	}

	if err := s.contracts.AcceptTrader(user, c.Params("contract_id"), uint(traderID)); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Trader accepted"})
}

func (s *APIServer) handleContractFormData(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	data, err := s.contracts.FormData(user.UserID)
	if err != nil {
		return s.respondError(c, err)
	}

	farms := make([]fiber.Map, 0, len(data.Farms))
	for _, f := range data.Farms {
		farms = append(farms, fiber.Map{
			"farm_id":   f.FarmID,
			"farm_name": f.FarmName,
		})
	}

	return c.JSON(fiber.Map{
		"farms":       farms,
		"commodities": data.Commodities,
		"varieties":   data.Varieties,
		"units":       data.Units,
	})
}
