package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebook/internal/handlers"
	"recipebook/internal/logger"
	"recipebook/internal/mail"
	"recipebook/internal/repository"
	"recipebook/internal/repository/db"
	"recipebook/internal/server"
	"recipebook/internal/service"

	"github.com/spf13/viper"
)

const defaultJanitorTick = time.Minute

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml + env overrides
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	mailer := mail.New(mail.Config{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Username: viper.GetString("mail.username"),
		Password: viper.GetString("mail.password"),
		From:     viper.GetString("mail.from"),
	})
	services := service.NewService(repos, mailer, service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		SessionTTL: viper.GetDuration("auth.session_ttl"),
		ResetTTL:   viper.GetDuration("auth.reset_ttl"),
		BaseURL:    viper.GetString("base_url"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start reset-token janitor
	go services.Janitor.Run(ctx, defaultJanitorTick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("auth.session_ttl", 24*time.Hour)
	viper.SetDefault("auth.reset_ttl", time.Hour)
	viper.SetDefault("base_url", "http://localhost:8080")

	// secrets come from the environment, never from the file
	for key, env := range map[string]string{
		"auth.signing_key": "SECRET_KEY",
		"mail.username":    "MAIL_USERNAME",
		"mail.password":    "MAIL_PASSWORD",
		"db.path":          "DB_PATH",
		"port":             "PORT",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
