package acceptance

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/livetracker/account-service/internal/config"
	"github.com/livetracker/account-service/internal/handler"
	"github.com/livetracker/account-service/internal/repository"
	"github.com/livetracker/account-service/internal/service"
	"github.com/livetracker/account-service/pkg/database"
	"github.com/livetracker/account-service/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// CapturingMailer records verification URLs instead of talking to an SMTP
// server, so tests can follow the emailed link.
type CapturingMailer struct {
	mu   sync.Mutex
	urls map[string][]string // recipient email -> verification URLs in order
	fail bool
}

func NewCapturingMailer() *CapturingMailer {
	return &CapturingMailer{urls: make(map[string][]string)}
}

func (m *CapturingMailer) SendVerificationEmail(_ context.Context, toEmail, _, verificationURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("simulated delivery failure")
	}
	m.urls[toEmail] = append(m.urls[toEmail], verificationURL)
	return nil
}

// LastToken returns the token from the most recent verification URL sent to
// the given recipient, or "" when none was sent.
func (m *CapturingMailer) LastToken(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	urls := m.urls[email]
	if len(urls) == 0 {
		return ""
	}
	last := urls[len(urls)-1]
	return last[strings.LastIndex(last, "/")+1:]
}

func (m *CapturingMailer) SentCount(email string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urls[email])
}

func (m *CapturingMailer) SetFailing(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

func (m *CapturingMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = make(map[string][]string)
	m.fail = false
}

// TestApp represents a test application instance
type TestApp struct {
	Config         *config.Config
	Router         *gin.Engine
	Server         *http.Server
	Listener       net.Listener
	BaseURL        string
	AccountService service.AccountService
	AccountHandler *handler.AccountHandler
	Repositories   *repository.Repositories
	Mailer         *CapturingMailer
	Logger         *zap.Logger
	Postgres       *database.Postgres
}

// NewTestApp creates a new test application instance
func NewTestApp(postgres *database.Postgres) (*TestApp, error) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "0", // Use 0 to get a random available port
			ReadTimeout:  config.Duration{Duration: 15 * time.Second},
			WriteTimeout: config.Duration{Duration: 15 * time.Second},
		},
		Postgres: config.PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "account_service",
			Password: "account_service_password",
			DBName:   "account_service_db",
			SSLMode:  "disable",
		},
		App: config.AppConfig{
			BaseURL:         "http://localhost:8080",
			VerificationTTL: config.Duration{Duration: 24 * time.Hour},
		},
		Security: config.SecurityConfig{
			BCryptCost: 4, // keep hashing cheap in tests
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
		Env: "test",
	}

	gin.SetMode(gin.TestMode)

	logger, err := observability.InitLogger("test")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	_, metricsHandler, err := observability.InitTelemetry("account-service-test")
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	repos := repository.NewRepositories(postgres)
	capturingMailer := NewCapturingMailer()

	accountService := service.NewAccountService(
		repos.Account,
		capturingMailer,
		logger,
		cfg.Security.BCryptCost,
		cfg.App.VerificationTTL.Duration,
		cfg.App.BaseURL,
	)

	accountHandler := handler.NewAccountHandler(accountService, logger)

	router := gin.New()
	router.Use(otelgin.Middleware("account-service-test"))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	setupRoutes(router, accountHandler, metricsHandler)

	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	addr := listener.Addr().(*net.TCPAddr)
	baseURL := fmt.Sprintf("http://localhost:%d", addr.Port)

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	app := &TestApp{
		Config:         cfg,
		Router:         router,
		Server:         srv,
		Listener:       listener,
		BaseURL:        baseURL,
		AccountService: accountService,
		AccountHandler: accountHandler,
		Repositories:   repos,
		Mailer:         capturingMailer,
		Logger:         logger,
		Postgres:       postgres,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start test server", zap.Error(err))
		}
	}()
	time.Sleep(100 * time.Millisecond)

	return app, nil
}

func (app *TestApp) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.Listener != nil {
		if err := app.Listener.Close(); err != nil && !strings.Contains(err.Error(), "use of closed network connection") {
			return fmt.Errorf("failed to close listener: %w", err)
		}
	}

	if app.Logger != nil {
		app.Logger.Sync()
	}

	return nil
}

func setupRoutes(router *gin.Engine, accountHandler *handler.AccountHandler, metricsHandler http.Handler) {
	// Metrics endpoint
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "account-service",
		})
	})

	router.GET("/verify-email/:token", accountHandler.VerifyEmail)

	// API routes
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", accountHandler.Register)
			auth.POST("/login", accountHandler.Login)
			auth.POST("/resend-verification", accountHandler.ResendVerification)
		}
	}
}
