package testutil

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/baufin/baufin-backend/internal/domain"
)

// MockCategoryRepository is a mock implementation of domain.WorkCategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*domain.WorkCategory
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*domain.WorkCategory)}
}

// Create stores a new work category
func (m *MockCategoryRepository) Create(category *domain.WorkCategory) error {
	if _, ok := m.Categories[category.ID]; ok {
		return domain.ErrCategoryExists
	}
	m.Categories[category.ID] = category
	return nil
}

// GetByID retrieves a work category by ID
func (m *MockCategoryRepository) GetByID(id string) (*domain.WorkCategory, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all work categories
func (m *MockCategoryRepository) GetAll() ([]*domain.WorkCategory, error) {
	categories := make([]*domain.WorkCategory, 0, len(m.Categories))
	for _, c := range m.Categories {
		categories = append(categories, c)
	}
	return categories, nil
}

// Update replaces a stored work category
func (m *MockCategoryRepository) Update(category *domain.WorkCategory) error {
	if _, ok := m.Categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return nil
}

// Delete removes a work category
func (m *MockCategoryRepository) Delete(id string) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetLineRepository
type MockBudgetRepository struct {
	Lines map[string]*domain.BudgetLine
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Lines: make(map[string]*domain.BudgetLine)}
}

// GetAll retrieves all budget lines
func (m *MockBudgetRepository) GetAll() ([]*domain.BudgetLine, error) {
	lines := make([]*domain.BudgetLine, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, l)
	}
	return lines, nil
}

// GetByCategory retrieves the budget line of a category
func (m *MockBudgetRepository) GetByCategory(categoryID string) (*domain.BudgetLine, error) {
	if line, ok := m.Lines[categoryID]; ok {
		return line, nil
	}
	return nil, domain.ErrNotFound
}

// Upsert creates or replaces a budget line
func (m *MockBudgetRepository) Upsert(line *domain.BudgetLine) error {
	m.Lines[line.CategoryID] = line
	return nil
}

// DeleteByCategory removes the budget line of a category
func (m *MockBudgetRepository) DeleteByCategory(categoryID string) error {
	delete(m.Lines, categoryID)
	return nil
}

// MockRoomRepository is a mock implementation of domain.RoomRepository
type MockRoomRepository struct {
	Rooms map[string]*domain.Room
}

// NewMockRoomRepository creates a new MockRoomRepository
func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{Rooms: make(map[string]*domain.Room)}
}

// Create stores a new room
func (m *MockRoomRepository) Create(room *domain.Room) error {
	if _, ok := m.Rooms[room.ID]; ok {
		return domain.ErrRoomExists
	}
	m.Rooms[room.ID] = room
	return nil
}

// GetByID retrieves a room by ID
func (m *MockRoomRepository) GetByID(id string) (*domain.Room, error) {
	if room, ok := m.Rooms[id]; ok {
		return room, nil
	}
	return nil, domain.ErrRoomNotFound
}

// GetAll retrieves all rooms
func (m *MockRoomRepository) GetAll() ([]*domain.Room, error) {
	rooms := make([]*domain.Room, 0, len(m.Rooms))
	for _, r := range m.Rooms {
		rooms = append(rooms, r)
	}
	return rooms, nil
}

// Update replaces a stored room
func (m *MockRoomRepository) Update(room *domain.Room) error {
	if _, ok := m.Rooms[room.ID]; !ok {
		return domain.ErrRoomNotFound
	}
	m.Rooms[room.ID] = room
	return nil
}

// Delete removes a room
func (m *MockRoomRepository) Delete(id string) error {
	if _, ok := m.Rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(m.Rooms, id)
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[string]*domain.Expense
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{Expenses: make(map[string]*domain.Expense)}
}

// Create stores a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) error {
	m.Expenses[expense.ID] = expense
	return nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id string) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves all expenses
func (m *MockExpenseRepository) GetAll() ([]*domain.Expense, error) {
	expenses := make([]*domain.Expense, 0, len(m.Expenses))
	for _, e := range m.Expenses {
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Update replaces a stored expense
func (m *MockExpenseRepository) Update(expense *domain.Expense) error {
	if _, ok := m.Expenses[expense.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	m.Expenses[expense.ID] = expense
	return nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id string) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// HasCategory reports whether any expense references the category
func (m *MockExpenseRepository) HasCategory(categoryID string) (bool, error) {
	for _, e := range m.Expenses {
		if e.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

// MockContractRepository is a mock implementation of domain.ContractRepository
type MockContractRepository struct {
	Contracts map[string]*domain.Contract
}

// NewMockContractRepository creates a new MockContractRepository
func NewMockContractRepository() *MockContractRepository {
	return &MockContractRepository{Contracts: make(map[string]*domain.Contract)}
}

// Create stores a new contract
func (m *MockContractRepository) Create(contract *domain.Contract) error {
	m.Contracts[contract.ID] = contract
	return nil
}

// GetByID retrieves a contract by ID
func (m *MockContractRepository) GetByID(id string) (*domain.Contract, error) {
	if contract, ok := m.Contracts[id]; ok {
		return contract, nil
	}
	return nil, domain.ErrContractNotFound
}

// GetAll retrieves all contracts
func (m *MockContractRepository) GetAll() ([]*domain.Contract, error) {
	contracts := make([]*domain.Contract, 0, len(m.Contracts))
	for _, c := range m.Contracts {
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// Update replaces a stored contract
func (m *MockContractRepository) Update(contract *domain.Contract) error {
	if _, ok := m.Contracts[contract.ID]; !ok {
		return domain.ErrContractNotFound
	}
	m.Contracts[contract.ID] = contract
	return nil
}

// Delete removes a contract
func (m *MockContractRepository) Delete(id string) error {
	if _, ok := m.Contracts[id]; !ok {
		return domain.ErrContractNotFound
	}
	delete(m.Contracts, id)
	return nil
}

// MockSupplierRepository is a mock implementation of domain.SupplierRepository
type MockSupplierRepository struct {
	Suppliers map[string]*domain.Supplier
}

// NewMockSupplierRepository creates a new MockSupplierRepository
func NewMockSupplierRepository() *MockSupplierRepository {
	return &MockSupplierRepository{Suppliers: make(map[string]*domain.Supplier)}
}

// Create stores a new supplier
func (m *MockSupplierRepository) Create(supplier *domain.Supplier) error {
	if _, ok := m.Suppliers[supplier.ID]; ok {
		return domain.ErrSupplierExists
	}
	m.Suppliers[supplier.ID] = supplier
	return nil
}

// GetByID retrieves a supplier by ID
func (m *MockSupplierRepository) GetByID(id string) (*domain.Supplier, error) {
	if supplier, ok := m.Suppliers[id]; ok {
		return supplier, nil
	}
	return nil, domain.ErrSupplierNotFound
}

// GetAll retrieves all suppliers
func (m *MockSupplierRepository) GetAll() ([]*domain.Supplier, error) {
	suppliers := make([]*domain.Supplier, 0, len(m.Suppliers))
	for _, s := range m.Suppliers {
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

// Update replaces a stored supplier
func (m *MockSupplierRepository) Update(supplier *domain.Supplier) error {
	if _, ok := m.Suppliers[supplier.ID]; !ok {
		return domain.ErrSupplierNotFound
	}
	m.Suppliers[supplier.ID] = supplier
	return nil
}

// Delete removes a supplier
func (m *MockSupplierRepository) Delete(id string) error {
	if _, ok := m.Suppliers[id]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(m.Suppliers, id)
	return nil
}

// MockDeliveryRepository is a mock implementation of domain.DeliveryRepository
type MockDeliveryRepository struct {
	Deliveries map[string]*domain.Delivery
}

// NewMockDeliveryRepository creates a new MockDeliveryRepository
func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{Deliveries: make(map[string]*domain.Delivery)}
}

// Create stores a new delivery
func (m *MockDeliveryRepository) Create(delivery *domain.Delivery) error {
	m.Deliveries[delivery.ID] = delivery
	return nil
}

// GetByID retrieves a delivery by ID
func (m *MockDeliveryRepository) GetByID(id string) (*domain.Delivery, error) {
	if delivery, ok := m.Deliveries[id]; ok {
		return delivery, nil
	}
	return nil, domain.ErrDeliveryNotFound
}

// GetAll retrieves all deliveries
func (m *MockDeliveryRepository) GetAll() ([]*domain.Delivery, error) {
	deliveries := make([]*domain.Delivery, 0, len(m.Deliveries))
	for _, d := range m.Deliveries {
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// GetBySupplier retrieves all deliveries of one supplier
func (m *MockDeliveryRepository) GetBySupplier(supplierID string) ([]*domain.Delivery, error) {
	deliveries := make([]*domain.Delivery, 0)
	for _, d := range m.Deliveries {
		if d.SupplierID == supplierID {
			deliveries = append(deliveries, d)
		}
	}
	return deliveries, nil
}

// Update replaces a stored delivery
func (m *MockDeliveryRepository) Update(delivery *domain.Delivery) error {
	if _, ok := m.Deliveries[delivery.ID]; !ok {
		return domain.ErrDeliveryNotFound
	}
	m.Deliveries[delivery.ID] = delivery
	return nil
}

// Delete removes a delivery
func (m *MockDeliveryRepository) Delete(id string) error {
	if _, ok := m.Deliveries[id]; !ok {
		return domain.ErrDeliveryNotFound
	}
	delete(m.Deliveries, id)
	return nil
}

// MockSummaryRepository is a mock implementation of domain.SummaryRepository
type MockSummaryRepository struct {
	Snapshot  *domain.SummarySnapshot
	SaveCount int
}

// NewMockSummaryRepository creates a new MockSummaryRepository
func NewMockSummaryRepository() *MockSummaryRepository {
	return &MockSummaryRepository{}
}

// Save stores the snapshot
func (m *MockSummaryRepository) Save(snapshot *domain.SummarySnapshot) error {
	m.Snapshot = snapshot
	m.SaveCount++
	return nil
}

// Get retrieves the stored snapshot
func (m *MockSummaryRepository) Get() (*domain.SummarySnapshot, error) {
	if m.Snapshot == nil {
		return nil, domain.ErrSummaryNotFound
	}
	return m.Snapshot, nil
}

// MockReceiptRepository is a mock implementation of storage.ReceiptRepository
type MockReceiptRepository struct {
	Objects map[string][]byte
	Types   map[string]string
}

// NewMockReceiptRepository creates a new MockReceiptRepository
func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

// Upload stores the object in memory
func (m *MockReceiptRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf
	m.Types[objectPath] = contentType
	return objectPath, nil
}

// Delete removes the object
func (m *MockReceiptRepository) Delete(ctx context.Context, objectPath string) error {
	if _, ok := m.Objects[objectPath]; !ok {
		return fmt.Errorf("object not found: %s", objectPath)
	}
	delete(m.Objects, objectPath)
	delete(m.Types, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake URL for the object
func (m *MockReceiptRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if _, ok := m.Objects[objectPath]; !ok {
		return "", fmt.Errorf("object not found: %s", objectPath)
	}
	return "https://storage.test/" + objectPath, nil
}
