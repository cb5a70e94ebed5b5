//go:build wireinject
// +build wireinject

package di

import (
	"MarketScan/pkg/config"
	"MarketScan/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCacheManager,

		// Data sources
		ProvidePrimarySource,
		ProvideSecondarySource,

		// Repository and optional collaborators
		ProvideRepository,
		ProvideSummarizer,
		ProvidePublisher,

		// Use cases
		ProvideScanGenerator,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
