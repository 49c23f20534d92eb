package service

import (
	"strings"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// validDate reports whether s is a canonical YYYY-MM-DD calendar date.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo    domain.ExpenseRepository
	categoryRepo   domain.WorkCategoryRepository
	summaryService *SummaryService
	eventPublisher websocket.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.WorkCategoryRepository,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// SetSummaryService sets the summary service used to rebuild the snapshot
// after mutations.
func (s *ExpenseService) SetSummaryService(summaryService *SummaryService) {
	s.summaryService = summaryService
}

// SetEventPublisher sets the WebSocket event publisher
func (s *ExpenseService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ExpenseService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *ExpenseService) rebuildSummary() {
	if s.summaryService == nil {
		return
	}
	if _, err := s.summaryService.Rebuild(util.Today()); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
	}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	Date        string
	Amount      int64
	CategoryID  string
	Room        domain.RoomRef
	Kind        domain.SpendKind
	Description string
	InvoiceRef  string
	Attachments []string
}

func (s *ExpenseService) validate(input CreateExpenseInput) error {
	if input.Date == "" {
		return domain.ErrDateRequired
	}
	if !validDate(input.Date) {
		return domain.ErrInvalidDate
	}
	if input.Amount == 0 {
		return domain.ErrAmountZero
	}
	if strings.TrimSpace(input.Description) == "" {
		return domain.ErrDescriptionRequired
	}
	if !input.Kind.Valid() {
		return domain.ErrInvalidSpendKind
	}
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return err
	}
	return nil
}

// CreateExpense records a new expense. Amount is signed cents; negative
// amounts are reversals.
func (s *ExpenseService) CreateExpense(input CreateExpenseInput) (*domain.Expense, error) {
	if input.Kind == "" {
		input.Kind = domain.SpendKindOther
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:          uuid.NewString(),
		Date:        input.Date,
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		Room:        input.Room,
		Kind:        input.Kind,
		Description: strings.TrimSpace(input.Description),
		InvoiceRef:  input.InvoiceRef,
		Attachments: input.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if expense.Attachments == nil {
		expense.Attachments = []string{}
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.ExpenseCreated(expense))
	s.rebuildSummary()

	return expense, nil
}

// GetExpenses retrieves all expenses
func (s *ExpenseService) GetExpenses() ([]*domain.Expense, error) {
	return s.expenseRepo.GetAll()
}

// GetExpenseByID retrieves an expense by ID
func (s *ExpenseService) GetExpenseByID(id string) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// UpdateExpense replaces the editable fields of an expense. The links to a
// contract, installment or delivery are kept as they are; a linked expense
// stays linked.
func (s *ExpenseService) UpdateExpense(id string, input CreateExpenseInput) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Kind == "" {
		input.Kind = expense.Kind
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	expense.Date = input.Date
	expense.Amount = input.Amount
	expense.CategoryID = input.CategoryID
	expense.Room = input.Room
	expense.Kind = input.Kind
	expense.Description = strings.TrimSpace(input.Description)
	expense.InvoiceRef = input.InvoiceRef
	if input.Attachments != nil {
		expense.Attachments = input.Attachments
	}
	expense.UpdatedAt = time.Now().UTC()

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.ExpenseUpdated(expense))
	s.rebuildSummary()

	return expense, nil
}

// DeleteExpense deletes an expense. Deleting an expense that was created by
// paying an installment or booking a delivery does not revert that action.
func (s *ExpenseService) DeleteExpense(id string) error {
	if _, err := s.expenseRepo.GetByID(id); err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.ExpenseDeleted(map[string]string{"id": id}))
	s.rebuildSummary()

	return nil
}
