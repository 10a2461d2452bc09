package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workshop-backend/internal/config"
	"workshop-backend/internal/handlers"
	"workshop-backend/internal/middleware"
	"workshop-backend/internal/models"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Customer   *handlers.CustomerHandler
	Vehicle    *handlers.VehicleHandler
	Catalog    *handlers.CatalogHandler
	Inventory  *handlers.InventoryHandler
	JobCard    *handlers.JobCardHandler
	Invoice    *handlers.InvoiceHandler
	Pos        *handlers.PosHandler
	DailyUsage *handlers.DailyUsageHandler
	Setting    *handlers.SettingHandler
	Report     *handlers.ReportHandler
	Health     *handlers.HealthHandler
}

func NewRouter(cfg *config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) http.Handler {
	r := mux.NewRouter()

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", h.Health.Health).Methods("GET")

	// Writes that touch stock or money are restricted to manager/admin.
	manager := authMiddleware.RequireRole(models.RoleManager, models.RoleAdmin)
	managed := func(fn http.HandlerFunc) http.HandlerFunc {
		return manager(fn).ServeHTTP
	}

	r.Handle("/health/system", authMiddleware.RequireAdmin(http.HandlerFunc(h.Health.SystemStats))).Methods("GET")

	// Authentication
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")
	authAPI := r.PathPrefix("/api/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", h.Auth.Me).Methods("GET")
	authAPI.HandleFunc("/change-password", h.Auth.ChangePassword).Methods("POST")

	// Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", h.User.List).Methods("GET")
	usersAPI.HandleFunc("", h.User.Register).Methods("POST")
	usersAPI.HandleFunc("/{id}", h.User.Get).Methods("GET")
	usersAPI.HandleFunc("/{id}", h.User.Update).Methods("PUT")
	usersAPI.HandleFunc("/{id}", h.User.Deactivate).Methods("DELETE")

	// Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", h.Customer.List).Methods("GET")
	customersAPI.HandleFunc("", h.Customer.Create).Methods("POST")
	customersAPI.HandleFunc("/{id}", h.Customer.Get).Methods("GET")
	customersAPI.HandleFunc("/{id}", h.Customer.Update).Methods("PUT")
	customersAPI.HandleFunc("/{id}", managed(h.Customer.Delete)).Methods("DELETE")

	// Vehicles
	vehiclesAPI := r.PathPrefix("/api/vehicles").Subrouter()
	vehiclesAPI.Use(authMiddleware.Authenticate)
	vehiclesAPI.HandleFunc("", h.Vehicle.List).Methods("GET")
	vehiclesAPI.HandleFunc("", h.Vehicle.Create).Methods("POST")
	vehiclesAPI.HandleFunc("/{id}", h.Vehicle.Get).Methods("GET")
	vehiclesAPI.HandleFunc("/{id}", h.Vehicle.Update).Methods("PUT")
	vehiclesAPI.HandleFunc("/{id}", managed(h.Vehicle.Delete)).Methods("DELETE")

	// Part categories
	categoriesAPI := r.PathPrefix("/api/categories").Subrouter()
	categoriesAPI.Use(authMiddleware.Authenticate)
	categoriesAPI.HandleFunc("", h.Catalog.ListCategories).Methods("GET")
	categoriesAPI.HandleFunc("", h.Catalog.CreateCategory).Methods("POST")
	categoriesAPI.HandleFunc("/{id}", h.Catalog.UpdateCategory).Methods("PUT")
	categoriesAPI.HandleFunc("/{id}", managed(h.Catalog.DeleteCategory)).Methods("DELETE")

	// Service categories
	serviceCategoriesAPI := r.PathPrefix("/api/service-categories").Subrouter()
	serviceCategoriesAPI.Use(authMiddleware.Authenticate)
	serviceCategoriesAPI.HandleFunc("", h.Catalog.ListServiceCategories).Methods("GET")
	serviceCategoriesAPI.HandleFunc("", h.Catalog.CreateServiceCategory).Methods("POST")
	serviceCategoriesAPI.HandleFunc("/{id}", h.Catalog.UpdateServiceCategory).Methods("PUT")
	serviceCategoriesAPI.HandleFunc("/{id}", managed(h.Catalog.DeleteServiceCategory)).Methods("DELETE")

	// Service catalog
	servicesAPI := r.PathPrefix("/api/services").Subrouter()
	servicesAPI.Use(authMiddleware.Authenticate)
	servicesAPI.HandleFunc("", h.Catalog.ListServices).Methods("GET")
	servicesAPI.HandleFunc("", h.Catalog.CreateService).Methods("POST")
	servicesAPI.HandleFunc("/{id}", h.Catalog.GetService).Methods("GET")
	servicesAPI.HandleFunc("/{id}", h.Catalog.UpdateService).Methods("PUT")
	servicesAPI.HandleFunc("/{id}", managed(h.Catalog.DeleteService)).Methods("DELETE")

	// Inventory
	inventoryAPI := r.PathPrefix("/api/inventory").Subrouter()
	inventoryAPI.Use(authMiddleware.Authenticate)
	inventoryAPI.HandleFunc("/items", h.Inventory.ListItems).Methods("GET")
	inventoryAPI.HandleFunc("/items", h.Inventory.CreateItem).Methods("POST")
	inventoryAPI.HandleFunc("/items/lookup", h.Inventory.Lookup).Methods("GET")
	inventoryAPI.HandleFunc("/items/{id}", h.Inventory.GetItem).Methods("GET")
	inventoryAPI.HandleFunc("/items/{id}", h.Inventory.UpdateItem).Methods("PUT")
	inventoryAPI.HandleFunc("/items/{id}", managed(h.Inventory.DeactivateItem)).Methods("DELETE")
	inventoryAPI.HandleFunc("/items/{id}/receive", h.Inventory.ReceiveStock).Methods("POST")
	inventoryAPI.HandleFunc("/items/{id}/adjust", managed(h.Inventory.AdjustStock)).Methods("POST")
	inventoryAPI.HandleFunc("/movements", h.Inventory.ListMovements).Methods("GET")

	// Job cards
	jobCardsAPI := r.PathPrefix("/api/job-cards").Subrouter()
	jobCardsAPI.Use(authMiddleware.Authenticate)
	jobCardsAPI.HandleFunc("", h.JobCard.List).Methods("GET")
	jobCardsAPI.HandleFunc("", h.JobCard.Create).Methods("POST")
	jobCardsAPI.HandleFunc("/stats", h.JobCard.Stats).Methods("GET")
	jobCardsAPI.HandleFunc("/{id}", h.JobCard.Get).Methods("GET")
	jobCardsAPI.HandleFunc("/{id}", h.JobCard.Update).Methods("PUT")
	jobCardsAPI.HandleFunc("/{id}", managed(h.JobCard.Delete)).Methods("DELETE")
	jobCardsAPI.HandleFunc("/{id}/status", h.JobCard.UpdateStatus).Methods("PATCH")
	jobCardsAPI.HandleFunc("/{id}/services", h.JobCard.AddService).Methods("POST")
	jobCardsAPI.HandleFunc("/{id}/services/{lineId}", h.JobCard.RemoveService).Methods("DELETE")
	jobCardsAPI.HandleFunc("/{id}/parts", h.JobCard.AddPart).Methods("POST")
	jobCardsAPI.HandleFunc("/{id}/parts/{lineId}", h.JobCard.RemovePart).Methods("DELETE")
	jobCardsAPI.HandleFunc("/{id}/manual-entries", h.JobCard.AddManualEntry).Methods("POST")
	jobCardsAPI.HandleFunc("/{id}/manual-entries/{entryId}", h.JobCard.UpdateManualEntry).Methods("PUT")
	jobCardsAPI.HandleFunc("/{id}/manual-entries/{entryId}", h.JobCard.RemoveManualEntry).Methods("DELETE")

	// Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", h.Invoice.List).Methods("GET")
	invoicesAPI.HandleFunc("", h.Invoice.Create).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", h.Invoice.Get).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/payments", h.Invoice.AddPayment).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/cancel", managed(h.Invoice.Cancel)).Methods("POST")

	// Point of sale
	posAPI := r.PathPrefix("/api/pos").Subrouter()
	posAPI.Use(authMiddleware.Authenticate)
	posAPI.HandleFunc("/sales", h.Pos.List).Methods("GET")
	posAPI.HandleFunc("/sales", h.Pos.Checkout).Methods("POST")
	posAPI.HandleFunc("/sales/today", h.Pos.TodaySummary).Methods("GET")
	posAPI.HandleFunc("/sales/{id}", h.Pos.Get).Methods("GET")
	posAPI.HandleFunc("/sales/{id}/refund", managed(h.Pos.Refund)).Methods("POST")

	// Daily shop usage
	usageAPI := r.PathPrefix("/api/daily-usage").Subrouter()
	usageAPI.Use(authMiddleware.Authenticate)
	usageAPI.HandleFunc("", h.DailyUsage.List).Methods("GET")
	usageAPI.HandleFunc("", h.DailyUsage.Create).Methods("POST")
	usageAPI.HandleFunc("/today", h.DailyUsage.TodaySummary).Methods("GET")
	usageAPI.HandleFunc("/{id}", managed(h.DailyUsage.Delete)).Methods("DELETE")

	// Settings (writes are admin only)
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", h.Setting.List).Methods("GET")
	settingsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(h.Setting.BulkUpdate)).ServeHTTP).Methods("PUT")
	settingsAPI.HandleFunc("/{key}", h.Setting.Get).Methods("GET")
	settingsAPI.HandleFunc("/{key}", authMiddleware.RequireAdmin(http.HandlerFunc(h.Setting.Update)).ServeHTTP).Methods("PUT")

	// Reports (manager/admin)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(manager)
	reportsAPI.HandleFunc("/sales", h.Report.Sales).Methods("GET")
	reportsAPI.HandleFunc("/inventory", h.Report.Inventory).Methods("GET")
	reportsAPI.HandleFunc("/profitability", h.Report.Profitability).Methods("GET")
	reportsAPI.HandleFunc("/usage", h.Report.Usage).Methods("GET")
	reportsAPI.HandleFunc("/gst", h.Report.GST).Methods("GET")

	// Dashboard is for everyone on the floor.
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", h.Report.Dashboard).Methods("GET")

	var handler http.Handler = r
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.RequestLogging(handler)
	handler = middleware.NewCORS(cfg)(handler)
	handler = middleware.PanicRecovery(handler)
	return handler
}
