package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternalError = errors.New("internal error")

	ErrCategoryNotFound    = errors.New("work category not found")
	ErrCategoryExists      = errors.New("work category already exists")
	ErrCategoryHasExpenses = errors.New("work category still has expenses")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomExists          = errors.New("room already exists")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrContractNotFound    = errors.New("contract not found")
	ErrContractHasPaid     = errors.New("contract has paid installments")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrInstallmentPaid     = errors.New("installment is already paid")
	ErrChangeOrderNotFound = errors.New("change order not found")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrSupplierExists      = errors.New("supplier already exists")
	ErrSupplierHasBookings = errors.New("supplier still has booked deliveries")
	ErrDeliveryNotFound    = errors.New("delivery not found")
	ErrDeliveryBooked      = errors.New("delivery is already booked")
	ErrDeliveryNotBookable = errors.New("delivery needs an amount and a category to be booked")
	ErrSummaryNotFound     = errors.New("summary snapshot not found")

	ErrAnalysisUnavailable = errors.New("analysis is not configured")
	ErrAnalysisEmpty       = errors.New("analysis returned no content")

	ErrNameRequired        = errors.New("name is required")
	ErrDateRequired        = errors.New("date is required")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrAmountZero          = errors.New("amount must not be zero")
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidSpendKind    = errors.New("invalid spend kind")
	ErrInvalidColor        = errors.New("invalid color, expected hex format like #3B82F6")
	ErrInvalidInstallment  = errors.New("invalid installment kind")
)
