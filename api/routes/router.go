package routes

import (
	"net/http"
	"time"

	"busexpress/internal/agents"
	"busexpress/internal/analytics"
	"busexpress/internal/auth"
	"busexpress/internal/bookings"
	"busexpress/internal/employees"
	"busexpress/internal/expenses"
	"busexpress/internal/fleet"
	"busexpress/internal/notifications"
	busroutes "busexpress/internal/routes"
	"busexpress/internal/shared/config"
	"busexpress/internal/shared/database"
	"busexpress/internal/trips"
	"busexpress/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router wires every module together: repositories onto the shared DB,
// services onto each other, controllers onto the gin engine.
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
}

func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	var cacheService cache.Service
	if r.db.Redis != nil {
		cacheService = cache.NewService(r.db.Redis)
	}

	gormDB := r.db.GetPostgreSQL()

	// Auth
	authRepo := auth.NewRepository(gormDB)
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	// Fleet
	fleetRepo := fleet.NewRepository(gormDB)
	fleetService := fleet.NewService(fleetRepo)

	// Routes
	routeRepo := busroutes.NewRepository(gormDB)
	routeService := busroutes.NewService(routeRepo)

	// Trips
	tripRepo := trips.NewRepository(gormDB)
	tripService := trips.NewService(tripRepo, fleetService, routeService)

	// Bookings
	bookingRepo := bookings.NewRepository(gormDB)
	var holdManager *bookings.HoldManager
	if r.db.Redis != nil {
		holdManager = bookings.NewHoldManager(r.db.Redis, r.config.Redis.SeatHoldTTL)
	}
	bookingService := bookings.NewService(bookingRepo, tripService, holdManager, r.publisher, r.config.Booking.MaxSeatsPerBooking)

	// Trips read confirmed occupancy back from bookings
	tripService.SetSeatInventory(bookings.NewSeatInventoryAdapter(bookingRepo))

	// Employees
	employeeRepo := employees.NewRepository(gormDB)
	employeeService := employees.NewService(employeeRepo, fleetService)

	// Agents
	agentRepo := agents.NewRepository(gormDB)
	agentService := agents.NewService(agentRepo, auth.NewUserDirectoryAdapter(authRepo))

	// Expenses
	expenseRepo := expenses.NewRepository(gormDB)
	expenseService := expenses.NewService(expenseRepo, fleetService)

	// Analytics
	analyticsRepo := analytics.NewRepository(gormDB)
	analyticsService := analytics.NewService(analyticsRepo)

	if cacheService != nil {
		fleetService.SetCacheService(cacheService)
		routeService.SetCacheService(cacheService)
		tripService.SetCacheService(cacheService)
		bookingService.SetCacheService(cacheService)
		analyticsService.SetCacheService(cacheService)
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		auth.NewRouter(authController).SetupRoutes(api)
		fleet.SetupFleetRoutes(api, fleet.NewController(fleetService))
		busroutes.SetupRouteRoutes(api, busroutes.NewController(routeService))
		trips.SetupTripRoutes(api, trips.NewController(tripService))
		bookings.SetupBookingRoutes(api, bookings.NewController(bookingService))
		employees.SetupEmployeeRoutes(api, employees.NewController(employeeService))
		agents.SetupAgentRoutes(api, agents.NewController(agentService))
		expenses.SetupExpenseRoutes(api, expenses.NewController(expenseService))
		analytics.SetupAnalyticsRoutes(api, analytics.NewController(analyticsService))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "busexpress-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busexpress-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
