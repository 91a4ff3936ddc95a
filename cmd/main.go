package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/ysekkat/bank-ledger/internal/jwt"
	"github.com/ysekkat/bank-ledger/internal/logger"
	"github.com/ysekkat/bank-ledger/internal/models"
	"github.com/ysekkat/bank-ledger/internal/repositories"
	"github.com/ysekkat/bank-ledger/internal/services"
	"github.com/ysekkat/bank-ledger/internal/ui"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	logLevel, jwtSecret, jwtExpSecond,
		adminFirstName, adminLastName, adminEmail, adminPassword,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		logLevel,
		jwtSecret, jwtExpSecond,
		adminFirstName, adminLastName, adminEmail, adminPassword,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns logging,
// JWT and seeded-credential configuration. The seeded client replaces the
// hardcoded credential of earlier designs with an injected value.
func parseConfig(path string) (
	logLevel string,
	jwtSecretKey string, jwtExpSecond int,
	adminFirstName, adminLastName, adminEmail, adminPassword string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	// Seeded admin client
	adminFirstName = getEnv("ADMIN_FIRST_NAME", "Admin")
	adminLastName = getEnv("ADMIN_LAST_NAME", "User")
	adminEmail = getEnv("ADMIN_EMAIL", "admin@bank.local")
	adminPassword = getEnv("ADMIN_PASSWORD", "change_me")

	return
}

// run initializes the logger, wires the in-memory stores and services, seeds
// the configured admin client, and drives the interactive menu until it
// exits or a shutdown signal arrives.
func run(ctx context.Context,
	logLevel string,
	jwtSecretKey string, jwtExpSecond int,
	adminFirstName, adminLastName, adminEmail, adminPassword string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Initialize JWT service
	jwtService := jwt.New(jwtSecretKey, time.Duration(jwtExpSecond)*time.Second)

	// Initialize repositories
	clientRepo := repositories.NewClientRepository()
	accountRepo := repositories.NewAccountRepository()
	transactionRepo := repositories.NewTransactionRepository()

	// Initialize services
	clientService := services.NewClientService(clientRepo, clientRepo)
	accountService := services.NewAccountService(accountRepo, accountRepo)
	transactionService := services.NewTransactionService(transactionRepo, transactionRepo)
	suspiciousService := services.NewSuspiciousActivityService(transactionRepo)
	authService := services.NewAuthService(clientRepo, jwtService)

	// Seed the configured admin client with a primary account
	admin, err := clientService.CreateClient(ctx, adminFirstName, adminLastName, adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin client: %w", err)
	}
	if _, err := accountService.CreateAccount(ctx, admin, models.AccountTypeCurrent, decimal.Zero); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	menu := ui.New(authService, clientService, accountService, transactionService, suspiciousService)

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		errChan <- menu.Run(ctxShutdown)
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping...")
		return nil
	case err := <-errChan:
		if err != nil {
			logger.Log.Errorw("menu stopped with error", "error", err)
			return err
		}
		logger.Log.Info("Session ended")
		return nil
	}
}
