package handler

import (
	"errors"
	"net/http"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RoomHandler handles room HTTP requests
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoomRequest represents the create room request body
type CreateRoomRequest struct {
	Name  string `json:"name"`
	Floor string `json:"floor"`
}

// UpdateRoomRequest represents the update room request body
type UpdateRoomRequest struct {
	Name      string  `json:"name"`
	Floor     *string `json:"floor,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

// CreateRoom handles POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	room, err := h.roomService.CreateRoom(service.CreateRoomInput{
		Name:  req.Name,
		Floor: req.Floor,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrRoomExists) {
			return NewConflictError(c, "A room with this name already exists on this floor")
		}
		log.Error().Err(err).Msg("Failed to create room")
		return NewInternalError(c, "Failed to create room")
	}

	log.Info().Str("room_id", room.ID).Str("name", room.Name).Msg("Room created")

	return c.JSON(http.StatusCreated, room)
}

// GetRooms handles GET /api/v1/rooms
func (h *RoomHandler) GetRooms(c echo.Context) error {
	rooms, err := h.roomService.GetRooms()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get rooms")
		return NewInternalError(c, "Failed to get rooms")
	}
	return c.JSON(http.StatusOK, rooms)
}

// UpdateRoom handles PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	var req UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	room, err := h.roomService.UpdateRoom(c.Param("id"), service.UpdateRoomInput{
		Name:      req.Name,
		Floor:     req.Floor,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return NewNotFoundError(c, "Room not found")
		}
		log.Error().Err(err).Str("room_id", c.Param("id")).Msg("Failed to update room")
		return NewInternalError(c, "Failed to update room")
	}

	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id
//
// Deleting a room is always allowed; expenses referencing it keep their
// reference and simply stop contributing to room summaries.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	if err := h.roomService.DeleteRoom(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return NewNotFoundError(c, "Room not found")
		}
		log.Error().Err(err).Str("room_id", c.Param("id")).Msg("Failed to delete room")
		return NewInternalError(c, "Failed to delete room")
	}

	log.Info().Str("room_id", c.Param("id")).Msg("Room deleted")
	return c.NoContent(http.StatusNoContent)
}
