package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ggwhite/go-masker"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gstrobl/places-autocomplete-go/handler"
	"github.com/gstrobl/places-autocomplete-go/middleware/auth"
	log "github.com/gstrobl/places-autocomplete-go/pkg/logger"
	"github.com/gstrobl/places-autocomplete-go/places"
)

type Application struct {
	app    *fiber.App
	client *places.Client
}

func (a *Application) Register() {
	a.app.Get("/healthcheck", handler.HealthCheck)
	a.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	a.app.Get("/monitor", monitor.New())
	a.app.Get("/autocomplete", handler.AutocompleteHandler(a.client))
	a.app.Get("/places/:id", handler.PlaceDetailsHandler(a.client))
}

func newClient() *places.Client {
	apiKey := os.Getenv("PLACES_API_KEY")
	if apiKey == "" {
		log.Logger().Panic("PLACES_API_KEY env variable must be set")
	}

	var types []string
	if typesStr := os.Getenv("PLACES_TYPES"); typesStr != "" {
		types = strings.Split(typesStr, ",")
	}

	client, err := places.New(places.Config{
		APIKey:       apiKey,
		Language:     os.Getenv("PLACES_LANGUAGE"),
		Types:        types,
		SessionToken: places.NewSessionToken(),
	})
	if err != nil {
		log.Logger().Panic("failed to init places client", zap.Error(err))
	}

	log.Logger().Info("places client ready", zap.String("api_key", masker.Password(apiKey)))

	return client
}

func main() {
	client := newClient()

	app := fiber.New()
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New())
	app.Use(recover.New())
	app.Use(auth.New())
	app.Use(pprof.New())

	application := &Application{app: app, client: client}
	application.Register()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("application gracefully shutting down..")
		_ = app.Shutdown()
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	if err := app.Listen(":" + port); err != nil {
		panic(fmt.Sprintf("app error: %s", err.Error()))
	}
}
