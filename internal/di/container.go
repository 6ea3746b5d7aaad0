package di

import (
	"fmt"

	"github.com/samber/do/v2"

	downloadService "github.com/okuznetsov/tgarchiver/internal/modules/download/service"
	feedService "github.com/okuznetsov/tgarchiver/internal/modules/feed/service"
	jobService "github.com/okuznetsov/tgarchiver/internal/modules/job/service"
	"github.com/okuznetsov/tgarchiver/internal/shared/config"
	httpServer "github.com/okuznetsov/tgarchiver/internal/transport/http"
	"github.com/okuznetsov/tgarchiver/internal/transport/telegram"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	})

	// Register Telegram client
	do.Provide(injector, func(i do.Injector) (*telegram.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return telegram.NewClient(cfg), nil
	})

	// Register download executor; the client serves as resolver, enumerator,
	// downloader and notifier
	do.Provide(injector, func(i do.Injector) (*downloadService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*telegram.Client](i)
		return downloadService.New(cfg, client, client, client, client), nil
	})

	// Register job manager
	do.Provide(injector, func(i do.Injector) (*jobService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		executor := do.MustInvoke[*downloadService.Service](i)
		return jobService.New(cfg, executor), nil
	})

	// Register feed service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		jobs := do.MustInvoke[*jobService.Service](i)
		return feedService.New(jobs), nil
	})

	// Register command handler and wire it into the client
	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		jobs := do.MustInvoke[*jobService.Service](i)
		client := do.MustInvoke[*telegram.Client](i)
		handler := telegram.NewHandler(jobs, client)
		client.SetHandler(handler)
		return handler, nil
	})

	// Register status server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		jobs := do.MustInvoke[*jobService.Service](i)
		feed := do.MustInvoke[*feedService.Service](i)
		return httpServer.New(cfg, jobs, feed), nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	if jobs, err := do.Invoke[*jobService.Service](injector); err == nil && jobs != nil {
		jobs.Stop()
	}
	return nil
}
