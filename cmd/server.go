package main

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/asyncx"
	"github.com/Abraxas-365/resumeforge/pkg/fsx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const healthProbeTimeout = 3 * time.Second

func newApp(c *Container) *fiber.App {
	srv := c.Config.Server

	app := fiber.New(fiber.Config{
		AppName:               srv.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          resumeapi.ErrorHandler(srv.IsDevelopment()),
		BodyLimit:             srv.MaxContentLength,
		IdleTimeout:           120 * time.Second,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: srv.IsDevelopment()}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(requestContext)

	app.Use(cors.New(cors.Config{
		AllowOrigins:  srv.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, HEAD, OPTIONS",
		ExposeHeaders: "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining, Retry-After",
	}))

	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey(srv.SecretKey)}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health", healthCheckHandler(c))
	c.Handlers.RegisterRoutes(app)

	app.Use(resumeapi.NotFound)
	return app
}

// requestContext copies the request id and client identity into the user
// context so logx entries built from it carry both.
func requestContext(c *fiber.Ctx) error {
	ctx := kernel.WithClientIP(c.UserContext(), ratelimit.ClientKey(c))
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
		ctx = kernel.WithRequestID(ctx, id)
	}
	c.SetUserContext(ctx)
	return c.Next()
}

// cookieKey derives the AES-256 key for encryptcookie from SECRET_KEY.
func cookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func healthCheckHandler(c *Container) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		cfg := c.Config

		if !cfg.AI.APIKeyConfigured() {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "API key not configured",
			})
		}

		pctx, cancel := context.WithTimeout(ctx.UserContext(), healthProbeTimeout)
		defer cancel()

		for _, fs := range []fsx.FileSystem{c.Uploads, c.Enhanced} {
			hc, ok := fs.(fsx.HealthChecker)
			if !ok {
				continue
			}
			if err := hc.Ping(pctx); err != nil {
				logx.WithContext(pctx).WithError(err).Warn("Health check: storage unavailable")
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"status":  "error",
					"message": "Required directories missing",
				})
			}
		}

		fns := make([]func(context.Context) (string, error), len(c.probes))
		for i, p := range c.probes {
			fns[i] = func(ctx context.Context) (string, error) { return p.name, p.check(ctx) }
		}

		checks := fiber.Map{}
		healthy := true
		for i, res := range asyncx.AllSettled(pctx, fns...) {
			name := c.probes[i].name
			if res.OK() {
				checks[name] = "healthy"
				continue
			}
			healthy = false
			checks[name] = "unhealthy"
			logx.WithContext(pctx).WithError(res.Err).WithField("dependency", name).Warn("Health check failed")
		}

		if !healthy {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "degraded",
				"message": "One or more dependencies are unavailable",
				"version": cfg.Server.Version,
				"checks":  checks,
			})
		}

		body := fiber.Map{
			"status":  "healthy",
			"message": "Resume Enhancement System is running",
			"version": cfg.Server.Version,
		}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		return ctx.JSON(body)
	}
}

func printRouteSummary(c *Container) {
	logx.Info("📋 Route Summary:")
	logx.Info("   ├─ Pages: GET /, POST /upload, GET /download/:filename")
	logx.Info("   ├─ API: /api/v1/resumes, /api/v1/ats/score, /api/v1/resumes/enhancements")
	if c.Jobs != nil {
		logx.Info("   ├─ Jobs: /api/v1/resumes/jobs")
	}
	logx.Info("   └─ Health: /health")
}

// startServer listens until SIGINT or SIGTERM, then drains HTTP and the
// background services.
func startServer(app *fiber.App, c *Container) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	background := c.StartBackgroundServices(ctx)

	addr := fmt.Sprintf(":%d", c.Config.Server.Port)
	go func() {
		logx.Info(strings.Repeat("=", 61))
		logx.Infof("🚀 Server listening on %s", addr)
		logx.Infof("🌐 Web UI: %s/", c.Config.Server.BaseURL)
		logx.Infof("💚 Health Check: %s/health", c.Config.Server.BaseURL)
		logx.Info(strings.Repeat("=", 61))

		if err := app.Listen(addr); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logx.Info("🛑 Shutdown signal received, shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	<-background

	logx.Info("✅ Server exited successfully")
}
