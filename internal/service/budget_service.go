package service

import (
	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// BudgetService handles budget line business logic
type BudgetService struct {
	budgetRepo     domain.BudgetLineRepository
	categoryRepo   domain.WorkCategoryRepository
	summaryService *SummaryService
	eventPublisher websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo domain.BudgetLineRepository,
	categoryRepo domain.WorkCategoryRepository,
) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// SetSummaryService sets the summary service used to rebuild the snapshot
// after mutations.
func (s *BudgetService) SetSummaryService(summaryService *SummaryService) {
	s.summaryService = summaryService
}

// SetEventPublisher sets the WebSocket event publisher
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BudgetService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *BudgetService) rebuildSummary() {
	if s.summaryService == nil {
		return
	}
	if _, err := s.summaryService.Rebuild(util.Today()); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
	}
}

// GetBudgetLines retrieves all budget lines
func (s *BudgetService) GetBudgetLines() ([]*domain.BudgetLine, error) {
	return s.budgetRepo.GetAll()
}

// GetBudgetLineByCategory retrieves the budget line for a category
func (s *BudgetService) GetBudgetLineByCategory(categoryID string) (*domain.BudgetLine, error) {
	return s.budgetRepo.GetByCategory(categoryID)
}

// SetBudgetLine creates or replaces the planned amount for a category.
// Planned is a ceiling in cents and must not be negative.
func (s *BudgetService) SetBudgetLine(categoryID string, planned int64, note string) (*domain.BudgetLine, error) {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}
	if planned < 0 {
		return nil, domain.ErrAmountNotPositive
	}

	line := &domain.BudgetLine{
		CategoryID: categoryID,
		Planned:    planned,
		Note:       note,
	}
	if err := s.budgetRepo.Upsert(line); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeBudget, line))
	s.rebuildSummary()

	return line, nil
}
