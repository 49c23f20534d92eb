package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers bundles every HTTP handler for route registration
type Handlers struct {
	Category   *CategoryHandler
	Budget     *BudgetHandler
	Room       *RoomHandler
	Expense    *ExpenseHandler
	Contract   *ContractHandler
	Supplier   *SupplierHandler
	Dashboard  *DashboardHandler
	Forecast   *ForecastHandler
	Report     *ReportHandler
	Attachment *AttachmentHandler
	WebSocket  *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// API version 1
	api := e.Group("/api/v1")

	// Work category routes
	categories := api.Group("/categories")
	categories.POST("", h.Category.CreateCategory)
	categories.GET("", h.Category.GetCategories)
	categories.GET("/:id", h.Category.GetCategory)
	categories.PUT("/:id", h.Category.UpdateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)

	// Budget line routes
	budget := api.Group("/budget")
	budget.GET("", h.Budget.GetBudgetLines)
	budget.PUT("/:categoryId", h.Budget.SetBudgetLine)

	// Room routes
	rooms := api.Group("/rooms")
	rooms.POST("", h.Room.CreateRoom)
	rooms.GET("", h.Room.GetRooms)
	rooms.PUT("/:id", h.Room.UpdateRoom)
	rooms.DELETE("/:id", h.Room.DeleteRoom)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", h.Expense.CreateExpense)
	expenses.GET("", h.Expense.GetExpenses)
	expenses.GET("/:id", h.Expense.GetExpense)
	expenses.PUT("/:id", h.Expense.UpdateExpense)
	expenses.DELETE("/:id", h.Expense.DeleteExpense)

	// Contract routes, including installment and change order lifecycles
	contracts := api.Group("/contracts")
	contracts.POST("", h.Contract.CreateContract)
	contracts.GET("", h.Contract.GetContracts)
	contracts.GET("/:id", h.Contract.GetContract)
	contracts.PUT("/:id", h.Contract.UpdateContract)
	contracts.DELETE("/:id", h.Contract.DeleteContract)
	contracts.POST("/:id/change-orders", h.Contract.AddChangeOrder)
	contracts.DELETE("/:id/change-orders/:changeOrderId", h.Contract.DeleteChangeOrder)
	contracts.POST("/:id/installments", h.Contract.AddInstallment)
	contracts.POST("/:id/installments/:installmentId/invoice", h.Contract.InvoiceInstallment)
	contracts.POST("/:id/installments/:installmentId/pay", h.Contract.PayInstallment)
	contracts.DELETE("/:id/installments/:installmentId", h.Contract.DeleteInstallment)

	// Supplier and delivery routes
	suppliers := api.Group("/suppliers")
	suppliers.POST("", h.Supplier.CreateSupplier)
	suppliers.GET("", h.Supplier.GetSuppliers)
	suppliers.PUT("/:id", h.Supplier.UpdateSupplier)
	suppliers.DELETE("/:id", h.Supplier.DeleteSupplier)
	suppliers.POST("/:id/deliveries", h.Supplier.AddDelivery)
	suppliers.GET("/:id/deliveries", h.Supplier.GetDeliveries)

	deliveries := api.Group("/deliveries")
	deliveries.GET("", h.Supplier.GetDeliveries)
	deliveries.PUT("/:id", h.Supplier.UpdateDelivery)
	deliveries.DELETE("/:id", h.Supplier.DeleteDelivery)
	deliveries.POST("/:id/book", h.Supplier.BookDelivery)

	// Dashboard and summary snapshot routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("", h.Dashboard.GetDashboard)
	dashboard.GET("/categories", h.Dashboard.GetCategorySummaries)
	dashboard.GET("/rooms", h.Dashboard.GetRoomSummaries)

	summary := api.Group("/summary")
	summary.GET("", h.Dashboard.GetSummary)
	summary.POST("/rebuild", h.Dashboard.RebuildSummary)

	// Forecast and report routes
	api.GET("/forecast", h.Forecast.GetForecast)
	api.GET("/committed", h.Forecast.GetCommittedFunds)
	api.GET("/report", h.Report.GetReport)
	api.GET("/report/text", h.Report.GetReportText)
	api.POST("/report/analyze", h.Report.AnalyzeReport)

	// Receipt attachment routes
	attachments := api.Group("/attachments")
	attachments.POST("", h.Attachment.UploadAttachment)
	attachments.DELETE("", h.Attachment.DeleteAttachment)
	attachments.GET("/url", h.Attachment.GetDownloadURL)

	// WebSocket endpoint
	e.GET("/ws", h.WebSocket.HandleWS)
}
