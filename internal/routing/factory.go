package routing

import (
	"fmt"

	"groomroute_backend/platform/config"
	"groomroute_backend/platform/logger"
)

// NewProvider builds the configured routing backend.
func NewProvider(cfg config.RoutingConfig, log *logger.Logger) (Provider, error) {
	rate := cfg.GetGeocodeRatePerSecond()

	switch cfg.GetRoutingProvider() {
	case config.RoutingProviderGoogle:
		return NewGoogleProvider(cfg.GetGoogleMapsAPIKey(), rate, log), nil
	case config.RoutingProviderMapbox:
		return NewMapboxProvider(cfg.GetMapboxAccessToken(), rate, log), nil
	default:
		return nil, fmt.Errorf("unknown routing provider: %q", cfg.GetRoutingProvider())
	}
}
