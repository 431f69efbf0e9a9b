package api

import (
	"errors"

	"github.com/agrisetu/farmlink-backend/internal/api/middleware"
	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	MobileNumber string `json:"mobile_number"`
	PassKey      string `json:"pass_key"`
}

func (s *APIServer) handleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid request body")))
	}

	result, err := s.authService.Login(req.MobileNumber, req.PassKey)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   result.Token,
		"user": fiber.Map{
			"id":            result.User.UserID,
			"mobile_number": result.User.MobileNumber,
			"name":          result.User.FullName,
			"user_type":     result.User.UserType,
			"email":         result.Email,
		},
	})
}

func (s *APIServer) handleSignup(c *fiber.Ctx) error {
	var req services.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid request body")))
	}

	user, err := s.authService.Signup(req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Signup step1 created",
		"user_id": user.UserID,
	})
}

func (s *APIServer) handleSignupDetails(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid user id")))
	}

	var req services.ProfileDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid request body")))
	}

	if err := s.authService.CreateProfile(uint(userID), req); err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Profile created"})
}

func (s *APIServer) handleMe(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	view, err := s.authService.GetUserView(user.UserID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": view})
}

func (s *APIServer) handleUpdateProfile(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)

	var req services.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, apierr.Validation(errors.New("invalid request body")))
	}

	view, err := s.authService.UpdateProfile(user.UserID, req)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    view,
	})
}
