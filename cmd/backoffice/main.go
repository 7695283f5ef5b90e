package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice-service/internal/handler"
	mid "backoffice-service/internal/middleware"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/config"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/jwtutil"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := &cli.App{
		Name:  "backoffice",
		Usage: "e-commerce back-office API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "migrate the schema before serving"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
			{
				Name:  "token",
				Usage: "sign an admin token with the shared key (local development)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.UintFlag{Name: "user-id", Value: 1},
					&cli.StringFlag{Name: "role", Value: "admin"},
					&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
				},
				Action: token,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and initializes the global logger
func setup() (*config.Config, *zap.Logger, error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.InitLogger(appConfig)
	return appConfig, logger.GetLogger(), nil
}

func connect(appConfig *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}
	log.Info("Database connection established")
	return db, nil
}

func migrate(_ *cli.Context) error {
	appConfig, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := connect(appConfig, log)
	if err != nil {
		return err
	}
	return database.Migrate(db, log)
}

func token(cCtx *cli.Context) error {
	appConfig, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	signed, err := jwtutil.NewJWTUtil(appConfig.JWT.SigningKey).GenerateToken(
		cCtx.String("email"),
		cCtx.Uint("user-id"),
		cCtx.String("role"),
		cCtx.Duration("ttl"),
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, signed)
	return nil
}

func serve(cCtx *cli.Context) error {
	appConfig, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting backoffice-service", appConfig.LogFields()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	db, err := connect(appConfig, log)
	if err != nil {
		return err
	}
	if cCtx.Bool("migrate") {
		if err := database.Migrate(db, log); err != nil {
			return err
		}
	}

	// Repositories and services
	brands := repository.NewBrandRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	customers := repository.NewCustomerRepository(db)
	orders := repository.NewOrderRepository(db)

	handler.InitBrandHandler(service.NewBrandService(brands))
	handler.InitCategoryHandler(service.NewCategoryService(categories))
	handler.InitProductHandler(service.NewProductService(products, brands, categories))
	handler.InitCustomerHandler(service.NewCustomerService(customers))
	handler.InitOrderHandler(service.NewOrderService(orders, customers, products))
	handler.InitDashboardHandler(service.NewDashboardService(orders, products, customers, appConfig.Dashboard))
	handler.InitHealthHandler(database.Ping)
	handler.SetDefaultLocale(appConfig.Dashboard.Locale)

	e := newServer(jwtutil.NewJWTUtil(appConfig.JWT.SigningKey), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer builds the echo instance with middleware and routes
func newServer(tokens *jwtutil.JWTUtil, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	// Routes
	e.GET("/metrics", prometheus.HandlerFunc())
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api", mid.JWTAuth(tokens))

	api.GET("/brands", handler.ListBrands)
	api.GET("/brands/:id", handler.GetBrand)
	api.GET("/brands/:id/products", handler.ListBrandProducts)
	api.POST("/brands", handler.CreateBrand)
	api.PUT("/brands/:id", handler.UpdateBrand)
	api.DELETE("/brands/:id", handler.DeleteBrand)

	api.GET("/categories", handler.ListCategories)
	api.GET("/categories/:id", handler.GetCategory)
	api.GET("/categories/:id/products", handler.ListCategoryProducts)
	api.POST("/categories", handler.CreateCategory)
	api.PUT("/categories/:id", handler.UpdateCategory)
	api.DELETE("/categories/:id", handler.DeleteCategory)

	api.GET("/products", handler.ListProducts)
	api.GET("/products/search", handler.SearchProducts)
	api.GET("/products/:id", handler.GetProduct)
	api.POST("/products", handler.CreateProduct)
	api.PUT("/products/:id", handler.UpdateProduct)
	api.DELETE("/products/:id", handler.DeleteProduct)

	api.GET("/customers", handler.ListCustomers)
	api.GET("/customers/:id", handler.GetCustomer)
	api.POST("/customers", handler.CreateCustomer)
	api.PUT("/customers/:id", handler.UpdateCustomer)
	api.DELETE("/customers/:id", handler.DeleteCustomer)

	api.GET("/orders", handler.ListOrders)
	api.GET("/orders/:id", handler.GetOrder)
	api.POST("/orders", handler.CreateOrder)
	api.PUT("/orders/:id", handler.UpdateOrder)
	api.PATCH("/orders/:id/status", handler.UpdateOrderStatus)
	api.DELETE("/orders/:id", handler.DeleteOrder)

	api.GET("/dashboard/stats", handler.DashboardStats)
	api.GET("/dashboard/orders-by-status", handler.OrdersByStatus)
	api.GET("/dashboard/products-per-month", handler.ProductsPerMonth)
	api.GET("/dashboard/latest-orders", handler.LatestOrders)
	api.GET("/dashboard/navigation-badge", handler.NavigationBadge)

	return e
}
