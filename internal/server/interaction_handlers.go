package server

import (
	"context"

	"gallery/internal/auth"
	"gallery/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// photoAction runs a like/favorite transition for the :id photo and answers
// with the caller's resulting status.
func (s *Server) photoAction(c *fiber.Ctx, status int, action func(ctx context.Context, actor auth.Principal, photoID uint) error) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	actor := middleware.PrincipalFrom(c)

	if err := action(c.UserContext(), actor, id); err != nil {
		return respondError(c, err)
	}

	st, err := s.interactionService.Status(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(st)
}

// LikePhoto handles POST /api/photos/:id/like
// @Summary Like photo
// @Description Only public photos owned by someone else can be liked, once
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 201 {object} service.InteractionStatus
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /photos/{id}/like [post]
func (s *Server) LikePhoto(c *fiber.Ctx) error {
	return s.photoAction(c, fiber.StatusCreated, s.interactionService.Like)
}

// UnlikePhoto handles DELETE /api/photos/:id/like
// @Summary Remove like
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} object{photo_id=int,liked=bool}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id}/like [delete]
func (s *Server) UnlikePhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	actor := middleware.PrincipalFrom(c)

	// No Status read-back: the photo may have turned private since.
	if err := s.interactionService.Unlike(c.UserContext(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"photo_id": id, "liked": false})
}

// FavoritePhoto handles POST /api/photos/:id/favorite
// @Summary Favorite photo
// @Description Any photo the caller can see, including their own
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 201 {object} service.InteractionStatus
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /photos/{id}/favorite [post]
func (s *Server) FavoritePhoto(c *fiber.Ctx) error {
	return s.photoAction(c, fiber.StatusCreated, s.interactionService.Favorite)
}

// UnfavoritePhoto handles DELETE /api/photos/:id/favorite
// @Summary Remove favorite
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} object{photo_id=int,favorited=bool}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id}/favorite [delete]
func (s *Server) UnfavoritePhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.interactionService.Unfavorite(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"photo_id": id, "favorited": false})
}

// GetLikeCount handles GET /api/photos/:id/likes
// @Summary Like count
// @Tags interactions
// @Produce json
// @Param id path int true "Photo ID"
// @Success 200 {object} object{photo_id=int,like_count=int}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id}/likes [get]
func (s *Server) GetLikeCount(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.interactionService.LikeCount(c.UserContext(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"photo_id": id, "like_count": count})
}

// GetInteractionStatus handles GET /api/photos/:id/status
// @Summary Caller's like and favorite state
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} service.InteractionStatus
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /photos/{id}/status [get]
func (s *Server) GetInteractionStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	st, err := s.interactionService.Status(c.UserContext(), middleware.PrincipalFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(st)
}

// GetMyLikes handles GET /api/me/likes
// @Summary Photos I liked
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Photo
// @Failure 401 {object} models.ErrorResponse
// @Router /me/likes [get]
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageSize)
	photos, err := s.interactionService.ListLikedPhotos(c.UserContext(), middleware.PrincipalFrom(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photos)
}

// GetMyFavorites handles GET /api/me/favorites
// @Summary Photos I favorited
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Photo
// @Failure 401 {object} models.ErrorResponse
// @Router /me/favorites [get]
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageSize)
	photos, err := s.interactionService.ListFavoritedPhotos(c.UserContext(), middleware.PrincipalFrom(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(photos)
}
