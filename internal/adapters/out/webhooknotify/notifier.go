// Package webhooknotify pushes transition events to registered webhook
// endpoints. Delivery is fire-and-forget over plain HTTP POST: a failing or
// slow endpoint is logged and skipped, never retried and never allowed to
// slow down the transition that triggered it.
package webhooknotify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"livraison/internal/events"
	"livraison/internal/pkg/errs"
)

// defaultTimeout bounds each webhook POST, including connection setup.
const defaultTimeout = 5 * time.Second

// payload is the JSON body posted to every endpoint.
type payload struct {
	Event      string  `json:"event"`
	DeliveryID string  `json:"delivery_id"`
	Status     string  `json:"status"`
	ActorID    string  `json:"actor_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
	Price      int     `json:"price"`
	OccurredAt string  `json:"occurred_at"`
}

// WebhookNotifier fans events out to an admin-managed set of endpoint URLs.
// The registry lives in memory and belongs to the service instance; it is
// rebuilt by the admin API after a restart.
type WebhookNotifier struct {
	client *http.Client
	logger *slog.Logger

	mu        sync.RWMutex
	endpoints map[string]struct{}

	wg sync.WaitGroup
}

// NewWebhookNotifier creates a notifier with an empty endpoint registry.
// timeout bounds each POST; zero or negative falls back to the default.
func NewWebhookNotifier(timeout time.Duration, logger *slog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WebhookNotifier{
		client:    &http.Client{Timeout: timeout},
		logger:    logger.With("component", "webhook_notifier"),
		endpoints: make(map[string]struct{}),
	}
}

// Register adds an endpoint URL to the registry. The URL must be absolute
// http or https. Registering the same URL twice is a no-op.
func (n *WebhookNotifier) Register(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("endpoint", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return errs.NewValueIsInvalidError("endpoint")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.endpoints[endpoint] = struct{}{}
	return nil
}

// Unregister removes an endpoint URL. Reports whether it was registered.
func (n *WebhookNotifier) Unregister(endpoint string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.endpoints[endpoint]
	delete(n.endpoints, endpoint)
	return ok
}

// Endpoints returns a snapshot of the registered endpoint URLs.
func (n *WebhookNotifier) Endpoints() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	endpoints := make([]string, 0, len(n.endpoints))
	for endpoint := range n.endpoints {
		endpoints = append(endpoints, endpoint)
	}
	return endpoints
}

// Notify posts the event to every registered endpoint and returns
// immediately. Each POST runs in its own goroutine on a detached context,
// since the caller's request finishes long before a slow endpoint does.
func (n *WebhookNotifier) Notify(_ context.Context, event events.Event) {
	endpoints := n.Endpoints()
	if len(endpoints) == 0 {
		return
	}

	body, err := json.Marshal(toPayload(event))
	if err != nil {
		n.logger.Error("failed to encode webhook payload", "error", err)
		return
	}

	for _, endpoint := range endpoints {
		n.wg.Add(1)
		go func(endpoint string) {
			defer n.wg.Done()
			n.post(endpoint, body, event)
		}(endpoint)
	}
}

// Wait blocks until all in-flight webhook deliveries finish. Called at
// shutdown so the process does not exit mid-POST.
func (n *WebhookNotifier) Wait() {
	n.wg.Wait()
}

func (n *WebhookNotifier) post(endpoint string, body []byte, event events.Event) {
	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodPost, endpoint, bytes.NewReader(body),
	)
	if err != nil {
		n.logger.Warn("failed to build webhook request",
			"endpoint", endpoint, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed",
			"endpoint", endpoint, "kind", string(event.Kind), "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		n.logger.Warn("webhook endpoint rejected event",
			"endpoint", endpoint, "kind", string(event.Kind), "status", resp.StatusCode)
	}
}

func toPayload(event events.Event) payload {
	var assigneeID *string
	if event.AssigneeID != nil {
		raw := event.AssigneeID.String()
		assigneeID = &raw
	}

	return payload{
		Event:      string(event.Kind),
		DeliveryID: event.DeliveryID.String(),
		Status:     event.Status.String(),
		ActorID:    event.ActorID.String(),
		AssigneeID: assigneeID,
		Price:      event.Price,
		OccurredAt: event.OccurredAt.UTC().Format(time.RFC3339),
	}
}
