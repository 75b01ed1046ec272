package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/app"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/message-queue/kafka"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := mongodb.ConnectToMongoDB(ctx, config.MongoDBConfig)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Client().Disconnect(context.Background())

	application := app.App{
		DB:     db,
		Config: config,
	}

	if config.KafkaConfig.BrokerAddress != "" {
		kafkaProducer, err := kafka.CreateKafkaProducer(context.Background(), config)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to Kafka, continuing without product events")
		} else {
			application.KafkaProducer = kafkaProducer
			defer kafkaProducer.Close()
		}
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		if err := application.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown server")
		}
	}()

	if err := application.Start(); err != nil {
		log.Error().Err(err).Msg("Server stopped")
	}
}
