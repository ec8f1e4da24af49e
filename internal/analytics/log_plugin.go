package analytics

import (
	"context"
	"sort"

	"folio/internal/log"
)

// LogPlugin writes every event as a structured log line.
type LogPlugin struct {
	logger *log.Logger
}

// NewLogPlugin logs through logger, or the package logger when nil.
func NewLogPlugin(logger *log.Logger) *LogPlugin {
	return &LogPlugin{logger: logger}
}

func (p *LogPlugin) Name() string { return "log" }

func (p *LogPlugin) Init(context.Context) error { return nil }

func (p *LogPlugin) Track(_ context.Context, event Event) error {
	fields := []log.Field{log.F("event", event.Name)}
	keys := make([]string, 0, len(event.Properties))
	for k := range event.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, log.F(k, event.Properties[k]))
	}

	if p.logger != nil {
		p.logger.With(fields...).Info("Analytics event")
	} else {
		log.LogWithFields(fields...).Info("Analytics event")
	}
	return nil
}

func (p *LogPlugin) Identify(_ context.Context, userID string, _ Properties) error {
	if p.logger != nil {
		p.logger.With(log.F("user_id", userID)).Info("Analytics identify")
	} else {
		log.LogWithFields(log.F("user_id", userID)).Info("Analytics identify")
	}
	return nil
}
