package server

import (
	"gallery/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type tokenRequest struct {
	Token string `json:"token"`
}

type validateRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Register handles POST /api/auth/register
// @Summary Register
// @Description Create an account and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.Registration true "Registration request"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req validation.Registration
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Exchange email and password for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.Credentials true "Login request"
// @Success 200 {object} service.AuthResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req validation.Credentials
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh token
// @Description Re-issue a token with a fresh expiry. Expired tokens are accepted.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body tokenRequest true "Token to refresh"
// @Success 200 {object} object{token=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req tokenRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	token, err := s.authService.Refresh(c.UserContext(), req.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// ValidateToken handles POST /api/auth/validate
// @Summary Validate token
// @Description Report whether a token is valid and belongs to the given email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validateRequest true "Token and email"
// @Success 200 {object} object{valid=bool}
// @Router /auth/validate [post]
func (s *Server) ValidateToken(c *fiber.Ctx) error {
	var req validateRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	return c.JSON(fiber.Map{"valid": s.authService.ValidateToken(req.Token, req.Email)})
}
