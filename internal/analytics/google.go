package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"github.com/google/uuid"

	"folio/internal/errors"
	"folio/internal/kv"
	"folio/internal/log"
)

// DefaultGAEndpoint is the GA4 Measurement Protocol collection URL.
const DefaultGAEndpoint = "https://www.google-analytics.com/mp/collect"

// ClientIDKey is the key-value key holding the generated GA client id.
const ClientIDKey = "analytics_client_id"

var (
	// ErrQueueFull is returned by Track when the send queue is saturated.
	ErrQueueFull  = errors.New("analytics queue full")
	// ErrNotStarted is returned by Track before a successful Init.
	ErrNotStarted = errors.New("analytics plugin not started")
)

// GAConfig configures GoogleAnalyticsPlugin.
type GAConfig struct {
	MeasurementID string
	APISecret     string
	ClientID      string
	// Endpoint defaults to DefaultGAEndpoint.
	Endpoint  string
	QueueSize int
	Timeout   time.Duration
}

type gaEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type gaPayload struct {
	ClientID string    `json:"client_id"`
	UserID   string    `json:"user_id,omitempty"`
	Events   []gaEvent `json:"events"`
}

// GoogleAnalyticsPlugin posts events to GA4 through the Measurement Protocol.
// Track only enqueues; a background worker started by Init does the HTTP
// calls. Events are dropped when the queue is full.
type GoogleAnalyticsPlugin struct {
	cfg    GAConfig
	client *client.Client

	queue chan gaPayload
	wg    sync.WaitGroup

	mu      sync.Mutex
	userID  string
	started bool
	closed  bool
}

// NewGoogleAnalyticsPlugin creates the plugin. It does not start sending
// until Init.
func NewGoogleAnalyticsPlugin(cfg GAConfig) *GoogleAnalyticsPlugin {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGAEndpoint
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.NewString()
	}
	return &GoogleAnalyticsPlugin{
		cfg:    cfg,
		client: client.New(),
		queue:  make(chan gaPayload, cfg.QueueSize),
	}
}

func (p *GoogleAnalyticsPlugin) Name() string { return "google-analytics" }

// ClientID returns the GA client id events are sent with.
func (p *GoogleAnalyticsPlugin) ClientID() string { return p.cfg.ClientID }

// Init starts the sender. Calling it again is a no-op.
func (p *GoogleAnalyticsPlugin) Init(ctx context.Context) error {
	if p.cfg.MeasurementID == "" || p.cfg.APISecret == "" {
		return errors.NewConfigError("google analytics needs a measurement id and api secret", "analytics", errors.InvalidConfig, nil)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return nil
	}
	p.started = true

	p.wg.Add(1)
	go p.run(context.WithoutCancel(ctx))
	return nil
}

func (p *GoogleAnalyticsPlugin) run(ctx context.Context) {
	defer p.wg.Done()
	for payload := range p.queue {
		if err := p.send(ctx, payload); err != nil {
			log.LogWithFields(log.F("plugin", p.Name())).WithError(err).Warn("Failed to send analytics event")
		}
	}
}

func (p *GoogleAnalyticsPlugin) send(ctx context.Context, payload gaPayload) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := p.client.Post(p.cfg.Endpoint, client.Config{
		Ctx:    ctx,
		Header: map[string]string{"Content-Type": "application/json"},
		Param: map[string]string{
			"measurement_id": p.cfg.MeasurementID,
			"api_secret":     p.cfg.APISecret,
		},
		Body: payload,
	})
	if err != nil {
		return errors.Wrap(err, "measurement protocol request failed")
	}
	defer resp.Close()

	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return fmt.Errorf("measurement protocol returned status %d", status)
	}
	return nil
}

// Track enqueues event. Events tracked before Init succeeded are rejected.
func (p *GoogleAnalyticsPlugin) Track(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	if !p.started {
		return ErrNotStarted
	}

	payload := gaPayload{
		ClientID: p.cfg.ClientID,
		UserID:   p.userID,
		Events:   []gaEvent{{Name: event.Name, Params: gaParams(event.Properties)}},
	}
	select {
	case p.queue <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

// Identify sets the user id attached to subsequent events.
func (p *GoogleAnalyticsPlugin) Identify(_ context.Context, userID string, _ Properties) error {
	p.mu.Lock()
	p.userID = userID
	p.mu.Unlock()
	return nil
}

// Close stops accepting events, flushes the queue and waits for the worker.
func (p *GoogleAnalyticsPlugin) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// gaParams drops nil values, which the Measurement Protocol rejects.
func gaParams(props Properties) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// ClientIDFrom returns the client id stored in store, generating and
// persisting one on first use.
func ClientIDFrom(store kv.Store) string {
	if id, ok := store.Get(ClientIDKey); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	if err := store.Set(ClientIDKey, id); err != nil {
		log.LogWithError(err).Warn("Failed to persist analytics client id")
	}
	return id
}
