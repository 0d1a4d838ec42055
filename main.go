package main

import (
	"catalog/app"
	"catalog/app/imports"
	"catalog/infra/postgres"
	"catalog/infra/rabbitmq"
	"catalog/internal/middleware"
	"catalog/pkg/auth"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_headers",
				"Invalid headers",
				fiber.Map{"error": err.Error()},
			))
		}

		// Multipart handlers (image upload, imports) read the form
		// through the fiber context.
		ctx := context.WithValue(c.UserContext(), "fiber", c)

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(res)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config", zap.String("port", appConfig.Port), zap.String("serviceName", appConfig.ServiceName))

	server := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
		BodyLimit:    110 * 1024 * 1024, // ZIP imports go up to 100MB
	})

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
	)

	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Error("Failed to connect event publisher, events disabled", zap.Error(err))
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	}

	tokenTTL, err := time.ParseDuration(appConfig.AdminTokenTTL)
	if err != nil {
		zap.L().Warn("Invalid ADMIN_TOKEN_TTL, using 12h", zap.String("value", appConfig.AdminTokenTTL))
		tokenTTL = 12 * time.Hour
	}
	tokenIssuer := auth.NewTokenIssuer(appConfig.AdminTokenSecret, tokenTTL)

	getCategoriesHandler := app.NewGetCategoriesHandler(pgRepository)
	getCategoryHandler := app.NewGetCategoryHandler(pgRepository)
	createCategoryHandler := app.NewCreateCategoryHandler(pgRepository, eventPublisher)
	updateCategoryHandler := app.NewUpdateCategoryHandler(pgRepository)
	deleteCategoryHandler := app.NewDeleteCategoryHandler(pgRepository, eventPublisher)

	getProductsHandler := app.NewGetProductsHandler(pgRepository)
	getProductHandler := app.NewGetProductHandler(pgRepository)
	getFeaturedProductsHandler := app.NewGetFeaturedProductsHandler(pgRepository)
	createProductHandler := app.NewCreateProductHandler(pgRepository, eventPublisher)
	updateProductHandler := app.NewUpdateProductHandler(pgRepository, eventPublisher)
	deleteProductHandler := app.NewDeleteProductHandler(pgRepository, eventPublisher)
	bulkDeleteProductsHandler := app.NewBulkDeleteProductsHandler(pgRepository, eventPublisher)
	uploadProductImageHandler := app.NewUploadProductImageHandler(pgRepository, eventPublisher)

	getSettingsHandler := app.NewGetSettingsHandler(pgRepository)
	updateSettingHandler := app.NewUpdateSettingHandler(pgRepository)

	createContactMessageHandler := app.NewCreateContactMessageHandler(pgRepository, eventPublisher)
	getContactMessagesHandler := app.NewGetContactMessagesHandler(pgRepository)

	loginHandler := app.NewLoginHandler(appConfig.AdminPasswordHash, tokenIssuer)
	importCSVHandler := app.NewImportCSVHandler(pgRepository, eventPublisher)
	importZIPHandler := app.NewImportZIPHandler(pgRepository, eventPublisher)

	publicRoutes := server.Group("/api/v1")
	publicRoutes.Get("/categories", handle[app.GetCategoriesRequest, app.GetCategoriesResponse](getCategoriesHandler))
	publicRoutes.Get("/categories/:slug", handle[app.GetCategoryRequest, app.GetCategoryResponse](getCategoryHandler))
	publicRoutes.Get("/products", handle[app.GetProductsRequest, app.GetProductsResponse](getProductsHandler))
	publicRoutes.Get("/products/featured", handle[app.GetFeaturedProductsRequest, app.GetFeaturedProductsResponse](getFeaturedProductsHandler))
	publicRoutes.Get("/products/:slug", handle[app.GetProductRequest, app.GetProductResponse](getProductHandler))
	publicRoutes.Get("/settings", handle[app.GetSettingsRequest, app.GetSettingsResponse](getSettingsHandler))
	publicRoutes.Post("/contact", handle[app.CreateContactMessageRequest, app.CreateContactMessageResponse](createContactMessageHandler))

	adminRoutes := server.Group("/api/v1/admin")
	adminRoutes.Post("/login", handle[app.LoginRequest, app.LoginResponse](loginHandler))

	adminRoutes.Use(middleware.NewAdminAuthMiddleware(tokenIssuer))
	adminRoutes.Post("/categories", handle[app.CreateCategoryRequest, app.CreateCategoryResponse](createCategoryHandler))
	adminRoutes.Put("/categories/:id", handle[app.UpdateCategoryRequest, app.UpdateCategoryResponse](updateCategoryHandler))
	adminRoutes.Delete("/categories/:id", handle[app.DeleteCategoryRequest, app.DeleteCategoryResponse](deleteCategoryHandler))

	adminRoutes.Post("/products", handle[app.CreateProductRequest, app.CreateProductResponse](createProductHandler))
	adminRoutes.Put("/products/:id", handle[app.UpdateProductRequest, app.UpdateProductResponse](updateProductHandler))
	adminRoutes.Delete("/products/:id", handle[app.DeleteProductRequest, app.DeleteProductResponse](deleteProductHandler))
	adminRoutes.Post("/products/bulk-delete", handle[app.BulkDeleteProductsRequest, app.BulkDeleteProductsResponse](bulkDeleteProductsHandler))
	adminRoutes.Post("/products/:id/image", handle[app.UploadProductImageRequest, app.UploadProductImageResponse](uploadProductImageHandler))

	adminRoutes.Put("/settings/:key", handle[app.UpdateSettingRequest, app.UpdateSettingResponse](updateSettingHandler))
	adminRoutes.Get("/contact-messages", handle[app.GetContactMessagesRequest, app.GetContactMessagesResponse](getContactMessagesHandler))

	adminRoutes.Post("/import/csv", handle[app.ImportCSVRequest, app.ImportCSVResponse](importCSVHandler))
	adminRoutes.Post("/import/zip", handle[app.ImportZIPRequest, app.ImportZIPResponse](importZIPHandler))
	adminRoutes.Get("/import/template", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="products_import_template.csv"`)
		return c.Send(imports.Template())
	})

	// Start server in a goroutine
	go func() {
		if err := server.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(server, pgRepository)
}

func gracefulShutdown(server *fiber.App, repository app.Repository) {
	// Create channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	if err := repository.Close(); err != nil {
		zap.L().Error("Error closing repository", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
