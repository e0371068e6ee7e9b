package server

import (
	"gallery/internal/middleware"
	"gallery/internal/models"
	"gallery/internal/service"
	"gallery/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type visibilityRequest struct {
	Visibility models.Visibility `json:"visibility"`
}

// ListPhotos handles GET /api/photos
// @Summary Public feed
// @Description Public photos, newest first
// @Tags photos
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Photo
// @Router /photos [get]
func (s *Server) ListPhotos(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageSize)
	photos, err := s.photoService.ListPublic(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photos)
}

// CreatePhoto handles POST /api/photos
// @Summary Create photo
// @Description Visibility defaults to private
// @Tags photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePhotoInput true "Photo"
// @Success 201 {object} models.Photo
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /photos [post]
func (s *Server) CreatePhoto(c *fiber.Ctx) error {
	var req service.CreatePhotoInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	photo, err := s.photoService.Create(c.UserContext(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

// GetPhoto handles GET /api/photos/:id
// @Summary Get photo
// @Tags photos
// @Produce json
// @Param id path int true "Photo ID"
// @Success 200 {object} models.Photo
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id} [get]
func (s *Server) GetPhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	photo, err := s.photoService.Get(c.UserContext(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photo)
}

// UpdatePhoto handles PUT /api/photos/:id
// @Summary Update photo
// @Tags photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Param request body validation.PhotoDetails true "New details"
// @Success 200 {object} models.Photo
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id} [put]
func (s *Server) UpdatePhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req validation.PhotoDetails
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	photo, err := s.photoService.Update(c.UserContext(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photo)
}

// SetPhotoVisibility handles PUT /api/photos/:id/visibility
// @Summary Change visibility
// @Description Existing likes survive a switch to private
// @Tags photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Param request body visibilityRequest true "public or private"
// @Success 200 {object} models.Photo
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /photos/{id}/visibility [put]
func (s *Server) SetPhotoVisibility(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req visibilityRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	photo, err := s.photoService.SetVisibility(c.UserContext(), middleware.PrincipalFrom(c), id, req.Visibility)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photo)
}

// DeletePhoto handles DELETE /api/photos/:id
// @Summary Delete photo
// @Description Removes the photo with its likes and favorites
// @Tags photos
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id} [delete]
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.photoService.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserPhotos handles GET /api/users/:id/photos
// @Summary Photos by owner
// @Description Private photos are included only for the owner
// @Tags photos
// @Produce json
// @Param id path int true "Owner ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Photo
// @Router /users/{id}/photos [get]
func (s *Server) GetUserPhotos(c *fiber.Ctx) error {
	ownerID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, defaultPageSize)

	photos, err := s.photoService.ListByOwner(c.UserContext(), middleware.PrincipalFrom(c), ownerID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photos)
}
