package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"talentflow/internal/config"
	"talentflow/internal/delivery/http/handler"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/delivery/http/routes"
	v1 "talentflow/internal/delivery/http/routes/v1"
	"talentflow/internal/pkg/jwt"
	"talentflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}

	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	accessLog := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware()
	f.Use(accessLog.Middleware())
	f.Use(errMw.Middleware())

	var operator *middleware.OperatorMiddleware
	if c.Config.Auth.JWTSecret != "" {
		operator = middleware.NewOperatorMiddleware(jwt.NewHMACService(c.Config.Auth.JWTSecret, 12*time.Hour))
	}

	wsHandler := ws.NewHandler(c.Hub, c.Sessions, logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		v1.Handlers{
			Requisitions: handler.NewRequisitionHandler(c.Requisitions),
			Applications: handler.NewApplicationHandler(c.Applications),
			Scoring:      handler.NewScoringHandler(c.Scoring),
			Assessments:  handler.NewAssessmentHandler(c.Assessments),
			Interviews:   handler.NewInterviewHandler(c.Interviews),
			Sessions:     handler.NewSessionHandler(c.Sessions, c.Hub, wsHandler),
			Operator:     operator,
		},
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(container, logger)
	return app, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
