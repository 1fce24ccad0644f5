package lab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// NotifyTimeout bounds the lab API call.
const NotifyTimeout = 5 * time.Second

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Notifier posts sync notifications to the lab API.
type Notifier struct {
	client HTTPDoer
	logger *log.Logger
}

// NewNotifier returns a Notifier. A nil client uses http.DefaultClient.
func NewNotifier(client HTTPDoer, logger *log.Logger) *Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Notifier{client: client, logger: logger}
}

type runCommand struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// Notify posts an echo command announcing action. It does nothing when the
// lab is disabled. Failures are logged and returned wrapping
// ErrUnavailable; callers treat them as warnings.
func (n *Notifier) Notify(ctx context.Context, cfg *Config, action string) error {
	if !cfg.Lab.Enabled || cfg.Lab.APIURL == "" {
		return nil
	}

	body, err := json.Marshal(runCommand{
		Command: "echo",
		Args:    []string{fmt.Sprintf("Sync completed for %s: %s", cfg.House.Name, action)},
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()

	url := strings.TrimRight(cfg.Lab.APIURL, "/") + "/api/run-command"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("lab API not reachable", "url", url, "err", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("lab API returned an error", "url", url, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	n.logger.Info("notified lab API", "action", action)
	return nil
}
