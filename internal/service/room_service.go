package service

import (
	"strings"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// RoomService handles room business logic
type RoomService struct {
	roomRepo       domain.RoomRepository
	summaryService *SummaryService
	eventPublisher websocket.EventPublisher
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo domain.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

// SetSummaryService sets the summary service used to rebuild the snapshot
// after mutations.
func (s *RoomService) SetSummaryService(summaryService *SummaryService) {
	s.summaryService = summaryService
}

// SetEventPublisher sets the WebSocket event publisher
func (s *RoomService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *RoomService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *RoomService) rebuildSummary() {
	if s.summaryService == nil {
		return
	}
	if _, err := s.summaryService.Rebuild(util.Today()); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
	}
}

// CreateRoomInput holds the input for creating a room
type CreateRoomInput struct {
	Name  string
	Floor string
}

// CreateRoom creates a new room. The ID is a slug of floor and name so two
// rooms with the same name on different floors stay distinct.
func (s *RoomService) CreateRoom(input CreateRoomInput) (*domain.Room, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	floor := strings.TrimSpace(input.Floor)

	id := util.Slugify(strings.TrimSpace(floor + " " + name))
	if existing, err := s.roomRepo.GetByID(id); err == nil && existing != nil {
		return nil, domain.ErrRoomExists
	}

	existing, err := s.roomRepo.GetAll()
	if err != nil {
		return nil, err
	}
	sortOrder := 0
	for _, r := range existing {
		if r.SortOrder >= sortOrder {
			sortOrder = r.SortOrder + 1
		}
	}

	room := &domain.Room{
		ID:        id,
		Name:      name,
		Floor:     floor,
		SortOrder: sortOrder,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeRoom, room))
	s.rebuildSummary()

	return room, nil
}

// GetRooms retrieves all rooms
func (s *RoomService) GetRooms() ([]*domain.Room, error) {
	return s.roomRepo.GetAll()
}

// GetRoomByID retrieves a room by ID
func (s *RoomService) GetRoomByID(id string) (*domain.Room, error) {
	return s.roomRepo.GetByID(id)
}

// UpdateRoomInput holds the editable fields of a room
type UpdateRoomInput struct {
	Name      string
	Floor     *string
	SortOrder *int
}

// UpdateRoom updates a room's name, floor and sort order. The ID stays
// stable even when the name or floor changes.
func (s *RoomService) UpdateRoom(id string, input UpdateRoomInput) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		room.Name = name
	}
	if input.Floor != nil {
		room.Floor = strings.TrimSpace(*input.Floor)
	}
	if input.SortOrder != nil {
		room.SortOrder = *input.SortOrder
	}

	if err := s.roomRepo.Update(room); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeRoom, room))
	s.rebuildSummary()

	return room, nil
}

// DeleteRoom deletes a room. Expenses that referenced it keep their
// reference; dangling room references are tolerated everywhere and simply
// drop out of the room summaries.
func (s *RoomService) DeleteRoom(id string) error {
	if _, err := s.roomRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.roomRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeRoom, map[string]string{"id": id}))
	s.rebuildSummary()

	return nil
}
