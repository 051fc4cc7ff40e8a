//go:build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/sghaida/eyeosee/internal/config"
)

//go:generate wire

// ProviderSet groups every provider of the application graph.
var ProviderSet = wire.NewSet(
	ProvideRunID,
	ProvideLogger,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideGenerator,
	ProvideWatcher,
	wire.Struct(new(App), "*"),
)

// InitializeApp builds the App for cfg. The implementation is generated into
// wire_gen.go.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
