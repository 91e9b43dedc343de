// Package di provides dependency injection configuration for the PinStack server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/pinstackapp/pinstack-server/internal/config"
	"github.com/pinstackapp/pinstack-server/internal/di/providers"
	"github.com/pinstackapp/pinstack-server/internal/logger"
	"github.com/pinstackapp/pinstack-server/internal/service"
	"github.com/pinstackapp/pinstack-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Suggestion backend
	do.Provide(injector, providers.ProvideSuggester)

	// Business services
	do.Provide(injector, providers.ProvideBoardService)
	do.Provide(injector, providers.ProvideItemService)
	do.Provide(injector, providers.ProvideCategorizationService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once everything is running.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[providers.SuggesterHandle](injector)

	_ = do.MustInvoke[*service.BoardService](injector)
	_ = do.MustInvoke[*service.ItemService](injector)
	_ = do.MustInvoke[*service.CategorizationService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
