package server

import (
	"github.com/labstack/echo/v4"

	"example.com/budget-tracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	familyHandler *handlers.FamilyHandler,
	categoryHandler *handlers.CategoryHandler,
	transactionHandler *handlers.TransactionHandler,
	budgetHandler *handlers.BudgetHandler,
	dashboardHandler *handlers.DashboardHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api")

	public := api.Group("", authRateLimiter)
	public.POST("/signup", authHandler.Signup)
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.Refresh)
	public.POST("/logout", authHandler.Logout)

	api.GET("/me", authHandler.Me, authMiddleware)
	api.POST("/change-password", authHandler.ChangePassword, authMiddleware)

	profile := api.Group("/profile", authMiddleware)
	profile.POST("", profileHandler.Create)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)
	profile.GET("/family-status", profileHandler.FamilyStatus)

	family := api.Group("/family-members", authMiddleware)
	family.POST("", familyHandler.AddMember)
	family.GET("", familyHandler.ListMembers)

	categories := api.Group("/categories", authMiddleware)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)

	transactions := api.Group("/transactions", authMiddleware)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/filtered", transactionHandler.Filtered)
	transactions.GET("/available-filters", transactionHandler.AvailableFilters)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)
	transactions.GET("/export/json", transactionHandler.ExportJSON)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	budgets := api.Group("/budgets", authMiddleware)
	budgets.POST("", budgetHandler.Upsert)
	budgets.GET("/:month", budgetHandler.ListByMonth)

	api.GET("/cfr-analysis/:month", dashboardHandler.CFRAnalysis, authMiddleware)
	api.GET("/dashboard", dashboardHandler.Dashboard, authMiddleware)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
}
