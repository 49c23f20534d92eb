package service

import (
	"regexp"
	"strings"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// DefaultCategoryColor is assigned when a category is created without an
// explicit color.
const DefaultCategoryColor = "#3B82F6"

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryService handles work category business logic
type CategoryService struct {
	categoryRepo   domain.WorkCategoryRepository
	budgetRepo     domain.BudgetLineRepository
	expenseRepo    domain.ExpenseRepository
	summaryService *SummaryService
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo domain.WorkCategoryRepository,
	budgetRepo domain.BudgetLineRepository,
	expenseRepo domain.ExpenseRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
	}
}

// SetSummaryService sets the summary service used to rebuild the snapshot
// after mutations.
func (s *CategoryService) SetSummaryService(summaryService *SummaryService) {
	s.summaryService = summaryService
}

// SetEventPublisher sets the WebSocket event publisher
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CategoryService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *CategoryService) rebuildSummary() {
	if s.summaryService == nil {
		return
	}
	if _, err := s.summaryService.Rebuild(util.Today()); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
	}
}

// CreateCategoryInput holds the input for creating a work category
type CreateCategoryInput struct {
	Name      string
	Color     string
	IsLumpSum bool
}

// CreateCategory creates a new work category. The ID is a slug of the name,
// assigned once and never recomputed. A zero budget line is created
// alongside so every category has a planned amount from the start.
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*domain.WorkCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	color := input.Color
	if color == "" {
		color = DefaultCategoryColor
	}
	if !hexColorRe.MatchString(color) {
		return nil, domain.ErrInvalidColor
	}

	id := util.Slugify(name)
	if existing, err := s.categoryRepo.GetByID(id); err == nil && existing != nil {
		return nil, domain.ErrCategoryExists
	}

	existing, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	sortOrder := 0
	for _, c := range existing {
		if c.SortOrder >= sortOrder {
			sortOrder = c.SortOrder + 1
		}
	}

	category := &domain.WorkCategory{
		ID:        id,
		Name:      name,
		Color:     color,
		SortOrder: sortOrder,
		IsLumpSum: input.IsLumpSum,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Upsert(&domain.BudgetLine{CategoryID: id, Planned: 0}); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeCategory, category))
	s.rebuildSummary()

	return category, nil
}

// GetCategories retrieves all work categories
func (s *CategoryService) GetCategories() ([]*domain.WorkCategory, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a work category by ID
func (s *CategoryService) GetCategoryByID(id string) (*domain.WorkCategory, error) {
	return s.categoryRepo.GetByID(id)
}

// UpdateCategoryInput holds the editable fields of a work category
type UpdateCategoryInput struct {
	Name      string
	Color     string
	SortOrder *int
	IsLumpSum *bool
}

// UpdateCategory updates a category's name, color, sort order and lump sum
// flag. The ID stays stable even when the name changes.
func (s *CategoryService) UpdateCategory(id string, input UpdateCategoryInput) (*domain.WorkCategory, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	if input.Color != "" {
		if !hexColorRe.MatchString(input.Color) {
			return nil, domain.ErrInvalidColor
		}
		category.Color = input.Color
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsLumpSum != nil {
		category.IsLumpSum = *input.IsLumpSum
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeCategory, category))
	s.rebuildSummary()

	return category, nil
}

// DeleteCategory deletes a category and its budget line. Categories that
// still have expenses attributed to them cannot be deleted.
func (s *CategoryService) DeleteCategory(id string) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}

	hasExpenses, err := s.expenseRepo.HasCategory(id)
	if err != nil {
		return err
	}
	if hasExpenses {
		return domain.ErrCategoryHasExpenses
	}

	if err := s.budgetRepo.DeleteByCategory(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeCategory, map[string]string{"id": id}))
	s.rebuildSummary()

	return nil
}
