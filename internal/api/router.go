package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pawmarket/petstore-api/internal/api/handler"
	"github.com/pawmarket/petstore-api/internal/api/middleware"
	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/service"
	mongodb "github.com/pawmarket/petstore-api/internal/infrastructure/db/mongo"
	redisdb "github.com/pawmarket/petstore-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its
// infrastructure handles.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	CacheTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, mongoClient *mongo.Client, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("petstore"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	petRepo := mongodb.NewPetRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	tx := mongodb.NewTxRunner(mongoClient)
	cache := redisdb.NewCatalogCache(rdb, cfg.CacheTTL)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	productService := service.NewProductService(productRepo, cache, log)
	petService := service.NewPetService(petRepo, cache, log)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, petRepo, tx, log)
	userService := service.NewUserService(userRepo, productRepo, petRepo, orderRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	petHandler := handler.NewPetHandler(petService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(userService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	auth := middleware.Auth(cfg.JWTSecret, userRepo)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleOwner)
	ownerOnly := middleware.RBAC(domain.RoleOwner)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public catalog ---
	v1 := e.Group("/v1")
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)
	v1.GET("/pets", petHandler.List)
	v1.GET("/pets/:id", petHandler.Get)
	v1.GET("/categories", categoryHandler.List)
	v1.GET("/categories/:id", categoryHandler.Get)

	// --- Listings (sellers and staff) ---
	listings := v1.Group("", auth, middleware.RBAC(domain.RoleSeller, domain.RoleAdmin, domain.RoleOwner))
	listings.POST("/products", productHandler.Create)
	listings.PUT("/products/:id", productHandler.Update)
	listings.DELETE("/products/:id", productHandler.Delete)
	listings.POST("/pets", petHandler.Create)
	listings.PUT("/pets/:id", petHandler.Update)
	listings.DELETE("/pets/:id", petHandler.Delete)

	// --- Categories (staff) ---
	categories := v1.Group("", auth, staffOnly)
	categories.POST("/categories", categoryHandler.Create)
	categories.PUT("/categories/:id", categoryHandler.Update)
	categories.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Orders ---
	orders := v1.Group("/orders", auth)
	orders.POST("", orderHandler.Create, middleware.RBAC(domain.RoleClient))
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.Transition)
	orders.DELETE("/:id", orderHandler.Delete, staffOnly)

	// --- Appointments ---
	appointments := v1.Group("/appointments", auth)
	appointments.POST("", appointmentHandler.Book, middleware.RBAC(domain.RoleClient))
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)

	// --- Users (staff) ---
	users := v1.Group("/users", auth)
	users.GET("", userHandler.List, staffOnly)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id/role", userHandler.ChangeRole, staffOnly)
	users.PATCH("/:id/ban", userHandler.SetBanned, staffOnly)
	users.DELETE("/:id", userHandler.Delete, ownerOnly)

	// --- Caller introspection and role catalog ---
	v1.GET("/me/permissions", userHandler.MyPermissions, middleware.OptionalAuth(cfg.JWTSecret, userRepo))
	v1.GET("/roles", userHandler.Roles, auth, ownerOnly)

	// --- Stats (owner) ---
	v1.GET("/stats", userHandler.Stats, auth, ownerOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
