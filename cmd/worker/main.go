package main

import (
	"catalog/infra/rabbitmq"
	"catalog/internal/consumers"
	"catalog/pkg/aws"
	"catalog/pkg/config"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Catalog media worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	cleanupHandler := consumers.NewMediaCleanupHandler(
		aws.NewS3Bucket(),
		zap.L(),
	)

	// Consumes every catalog event; the handler ignores the ones
	// that need no media work.
	consumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      "catalog.product",
		QueueName:     "catalog.media.all.v1", // Queue name: {service}.{domain}.{events}.{version}
		RoutingKeys:   []string{"product.*.v1", "product.image.*.v1", "category.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, consumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create catalog consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.L().Info("Starting catalog event consumer...")
		if err := consumer.Consume(ctx, cleanupHandler.HandleEvent); err != nil {
			if err != context.Canceled {
				zap.L().Error("Catalog consumer error", zap.Error(err))
			}
		}
	}()

	zap.L().Info("Worker service started successfully. Waiting for events...")
	zap.L().Info("Consuming from exchange",
		zap.String("catalogExchange", "catalog.product"),
	)

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker service...")
	cancel()

	zap.L().Info("Worker service stopped gracefully")
}
