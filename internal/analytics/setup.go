package analytics

import (
	"folio/internal/config"
	"folio/internal/kv"
)

// FromConfig builds a manager following the analytics feature flag. The log
// plugin is always registered; Google Analytics is added when a measurement
// id is configured. store keeps the generated client id and may be nil.
func FromConfig(cfg *config.Config, store kv.Store) *Manager {
	m := NewManager(cfg.Features.EnableAnalytics)
	m.Register(NewLogPlugin(nil))

	if cfg.Analytics.GoogleAnalyticsID != "" {
		clientID := cfg.Analytics.ClientID
		if clientID == "" && store != nil {
			clientID = ClientIDFrom(store)
		}
		m.Register(NewGoogleAnalyticsPlugin(GAConfig{
			MeasurementID: cfg.Analytics.GoogleAnalyticsID,
			APISecret:     cfg.Analytics.APISecret,
			ClientID:      clientID,
		}))
	}
	return m
}
