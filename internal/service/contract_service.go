package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/baufin/baufin-backend/internal/util"
	"github.com/baufin/baufin-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ContractService handles contract, change order and installment business
// logic. Paying an installment writes a linked expense, which is the only
// path by which contract money enters the spend totals.
type ContractService struct {
	contractRepo   domain.ContractRepository
	categoryRepo   domain.WorkCategoryRepository
	expenseRepo    domain.ExpenseRepository
	summaryService *SummaryService
	eventPublisher websocket.EventPublisher
}

// NewContractService creates a new ContractService
func NewContractService(
	contractRepo domain.ContractRepository,
	categoryRepo domain.WorkCategoryRepository,
	expenseRepo domain.ExpenseRepository,
) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// SetSummaryService sets the summary service used to rebuild the snapshot
// after mutations.
func (s *ContractService) SetSummaryService(summaryService *SummaryService) {
	s.summaryService = summaryService
}

// SetEventPublisher sets the WebSocket event publisher
func (s *ContractService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ContractService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

func (s *ContractService) rebuildSummary() {
	if s.summaryService == nil {
		return
	}
	if _, err := s.summaryService.Rebuild(util.Today()); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild summary snapshot")
	}
}

// CreateContractInput holds the input for creating a contract
type CreateContractInput struct {
	CategoryID   string
	Counterparty string
	Kind         domain.SpendKind
	ContractSum  *int64
	ContractDate *string
	Note         *string
}

// CreateContract creates a new contract. ContractSum is optional; contracts
// without one commit funds only through their installments.
func (s *ContractService) CreateContract(input CreateContractInput) (*domain.Contract, error) {
	counterparty := strings.TrimSpace(input.Counterparty)
	if counterparty == "" {
		return nil, domain.ErrNameRequired
	}
	if input.Kind == "" {
		input.Kind = domain.SpendKindLabor
	}
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidSpendKind
	}
	if input.ContractDate != nil && !validDate(*input.ContractDate) {
		return nil, domain.ErrInvalidDate
	}
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	contract := &domain.Contract{
		ID:           uuid.NewString(),
		CategoryID:   input.CategoryID,
		Counterparty: counterparty,
		Kind:         input.Kind,
		ContractSum:  input.ContractSum,
		ContractDate: input.ContractDate,
		Note:         input.Note,
		ChangeOrders: []*domain.ChangeOrder{},
		Installments: []*domain.Installment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.contractRepo.Create(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}

// GetContracts retrieves all contracts
func (s *ContractService) GetContracts() ([]*domain.Contract, error) {
	return s.contractRepo.GetAll()
}

// GetContractByID retrieves a contract by ID
func (s *ContractService) GetContractByID(id string) (*domain.Contract, error) {
	return s.contractRepo.GetByID(id)
}

// UpdateContractInput holds the editable fields of a contract. A nil
// ContractSum leaves the stored sum untouched; ClearContractSum removes it.
type UpdateContractInput struct {
	CategoryID       string
	Counterparty     string
	Kind             domain.SpendKind
	ContractSum      *int64
	ClearContractSum bool
	ContractDate     *string
	Note             *string
}

// UpdateContract updates a contract's editable fields
func (s *ContractService) UpdateContract(id string, input UpdateContractInput) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if counterparty := strings.TrimSpace(input.Counterparty); counterparty != "" {
		contract.Counterparty = counterparty
	}
	if input.CategoryID != "" {
		if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
			return nil, err
		}
		contract.CategoryID = input.CategoryID
	}
	if input.Kind != "" {
		if !input.Kind.Valid() {
			return nil, domain.ErrInvalidSpendKind
		}
		contract.Kind = input.Kind
	}
	switch {
	case input.ClearContractSum:
		contract.ContractSum = nil
	case input.ContractSum != nil:
		contract.ContractSum = input.ContractSum
	}
	if input.ContractDate != nil {
		if *input.ContractDate != "" && !validDate(*input.ContractDate) {
			return nil, domain.ErrInvalidDate
		}
		contract.ContractDate = input.ContractDate
	}
	if input.Note != nil {
		contract.Note = input.Note
	}
	contract.UpdatedAt = time.Now().UTC()

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}

// DeleteContract deletes a contract. Contracts with paid installments
// cannot be deleted because the linked expenses would lose their origin.
func (s *ContractService) DeleteContract(id string) error {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return err
	}
	if contract.HasPaidInstallments() {
		return domain.ErrContractHasPaid
	}

	if err := s.contractRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeContract, map[string]string{"id": id}))
	s.rebuildSummary()

	return nil
}

// ChangeOrderInput holds the input for adding a change order
type ChangeOrderInput struct {
	Description string
	Amount      int64
	Date        *string
	Note        *string
}

// AddChangeOrder adds an approved scope addition to a contract, increasing
// its total value.
func (s *ContractService) AddChangeOrder(contractID string, input ChangeOrderInput) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if input.Amount == 0 {
		return nil, domain.ErrAmountZero
	}
	if input.Date != nil && !validDate(*input.Date) {
		return nil, domain.ErrInvalidDate
	}

	contract.ChangeOrders = append(contract.ChangeOrders, &domain.ChangeOrder{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        input.Date,
		Note:        input.Note,
		CreatedAt:   time.Now().UTC(),
	})
	contract.UpdatedAt = time.Now().UTC()

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}

// DeleteChangeOrder removes a change order from a contract
func (s *ContractService) DeleteChangeOrder(contractID, changeOrderID string) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}

	found := false
	kept := contract.ChangeOrders[:0]
	for _, co := range contract.ChangeOrders {
		if co.ID == changeOrderID {
			found = true
			continue
		}
		kept = append(kept, co)
	}
	if !found {
		return nil, domain.ErrChangeOrderNotFound
	}
	contract.ChangeOrders = kept
	contract.UpdatedAt = time.Now().UTC()

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}

// InstallmentInput holds the input for adding an installment
type InstallmentInput struct {
	Kind          domain.InstallmentKind
	InvoiceNumber *string
	Amount        int64
	DueDate       *string
	Status        domain.InstallmentStatus
	Note          *string
}

// AddInstallment adds an installment to a contract. Numbers are dense and
// 1-based in creation order. New installments start open or not yet
// invoiced; paid and overdue are never initial states.
func (s *ContractService) AddInstallment(contractID string, input InstallmentInput) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	if input.Kind == "" {
		input.Kind = domain.InstallmentPartial
	}
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidInstallment
	}
	if input.Amount <= 0 {
		return nil, domain.ErrAmountNotPositive
	}
	if input.DueDate != nil && !validDate(*input.DueDate) {
		return nil, domain.ErrInvalidDate
	}
	status := input.Status
	if status == "" {
		status = domain.StatusOpen
	}
	if status != domain.StatusOpen && status != domain.StatusNotYetInvoiced {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	contract.Installments = append(contract.Installments, &domain.Installment{
		ID:            uuid.NewString(),
		Kind:          input.Kind,
		Number:        len(contract.Installments) + 1,
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		DueDate:       input.DueDate,
		Status:        status,
		Note:          input.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	contract.UpdatedAt = now

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}

// InvoiceInstallment moves a not yet invoiced installment to open, setting
// invoice number and due date.
func (s *ContractService) InvoiceInstallment(contractID, installmentID string, invoiceNumber, dueDate *string) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	installment := contract.FindInstallment(installmentID)
	if installment == nil {
		return nil, domain.ErrInstallmentNotFound
	}
	if installment.Status == domain.StatusPaid {
		return nil, domain.ErrInstallmentPaid
	}
	if dueDate != nil && !validDate(*dueDate) {
		return nil, domain.ErrInvalidDate
	}

	installment.Status = domain.StatusOpen
	if invoiceNumber != nil {
		installment.InvoiceNumber = invoiceNumber
	}
	if dueDate != nil {
		installment.DueDate = dueDate
	}
	installment.UpdatedAt = time.Now().UTC()
	contract.UpdatedAt = installment.UpdatedAt

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}

// PayInstallment marks an installment as paid and records the linked
// expense in one step. The expense carries the contract's category and
// spend kind; its amount enters every spend total from that moment on.
func (s *ContractService) PayInstallment(contractID, installmentID string, paidDate string) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	installment := contract.FindInstallment(installmentID)
	if installment == nil {
		return nil, domain.ErrInstallmentNotFound
	}
	if installment.Status == domain.StatusPaid {
		return nil, domain.ErrInstallmentPaid
	}
	if paidDate == "" {
		paidDate = util.Today()
	}
	if !validDate(paidDate) {
		return nil, domain.ErrInvalidDate
	}

	now := time.Now().UTC()
	expense := &domain.Expense{
		ID:            uuid.NewString(),
		Date:          paidDate,
		Amount:        installment.Amount,
		CategoryID:    contract.CategoryID,
		Room:          domain.NoRoom(),
		Kind:          contract.Kind,
		Description:   fmt.Sprintf("%s – %s %d", contract.Counterparty, installment.Kind.Label(), installment.Number),
		ContractID:    &contract.ID,
		InstallmentID: &installment.ID,
		Attachments:   []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if installment.InvoiceNumber != nil {
		expense.InvoiceRef = *installment.InvoiceNumber
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	installment.Status = domain.StatusPaid
	installment.PaidDate = &paidDate
	installment.ExpenseID = &expense.ID
	installment.UpdatedAt = now
	contract.UpdatedAt = now

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	log.Info().
		Str("contract_id", contract.ID).
		Str("installment_id", installment.ID).
		Int64("amount", installment.Amount).
		Msg("Installment paid")

	s.publishEvent(websocket.InstallmentPaid(map[string]interface{}{
		"contractId":    contract.ID,
		"installmentId": installment.ID,
		"expenseId":     expense.ID,
		"amount":        installment.Amount,
	}))
	s.rebuildSummary()

	return contract, nil
}

// DeleteInstallment removes an unpaid installment and renumbers the rest so
// the sequence stays dense.
func (s *ContractService) DeleteInstallment(contractID, installmentID string) (*domain.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	installment := contract.FindInstallment(installmentID)
	if installment == nil {
		return nil, domain.ErrInstallmentNotFound
	}
	if installment.Status == domain.StatusPaid {
		return nil, domain.ErrInstallmentPaid
	}

	kept := contract.Installments[:0]
	for _, inst := range contract.Installments {
		if inst.ID == installmentID {
			continue
		}
		kept = append(kept, inst)
	}
	for i, inst := range kept {
		inst.Number = i + 1
	}
	contract.Installments = kept
	contract.UpdatedAt = time.Now().UTC()

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeContract, contract))
	s.rebuildSummary()

	return contract, nil
}
