package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"blogward/api"
	"blogward/auth"
	"blogward/config"
	"blogward/database"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "blogward"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "blogward"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Route reads through a replica when one is configured.
	if replicaDSN := config.GetString(c, "DB_REPLICA_DSN", ""); replicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(replicaDSN)},
		}))
		if err != nil {
			log.Fatal().Err(err).Msg("Error registering read replica")
		}
		log.Info().Msg("Read replica registered")
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Error migrating schema")
	}

	tokens, err := auth.NewTokens(auth.Config{
		Secret: config.GetString(c, "SECRET_KEY", ""),
		TTL:    config.GetDuration(c, "TOKEN_TTL_SECONDS", auth.DefaultTTL),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing token service")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
