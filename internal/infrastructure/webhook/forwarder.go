package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Forwarder posts submissions to the downstream automation endpoints.
// It implements shared.Notifier. Delivery is best effort: the caller has
// already persisted the submission and only logs failures.
type Forwarder struct {
	cfg        config.WebhookConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewForwarder creates a new webhook forwarder
func NewForwarder(cfg config.WebhookConfig, logger *zap.Logger) *Forwarder {
	return &Forwarder{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("webhook"),
	}
}

// NewForwarderWithClient creates a forwarder with a custom HTTP client
func NewForwarderWithClient(cfg config.WebhookConfig, client *http.Client, logger *zap.Logger) *Forwarder {
	return &Forwarder{cfg: cfg, httpClient: client, logger: logger.Named("webhook")}
}

// Notify forwards the payload to the destination for the given kind.
// Orders additionally fan out to the invoice destination; the invoice
// outcome is reported alongside the primary one but never fails the call
// on its own.
func (f *Forwarder) Notify(ctx context.Context, kind shared.SubmissionKind, payload any) (*shared.DeliveryReport, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_WEBHOOK_TYPE", "Invalid webhook type")
	}

	url := f.cfg.URLFor(kind.String())
	if url == "" {
		return nil, shared.NewDomainError("WEBHOOK_NOT_CONFIGURED",
			"No destination configured for "+kind.String()+" submissions")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	report := &shared.DeliveryReport{Kind: kind}
	report.Primary = f.post(ctx, url, body)
	f.logOutcome(kind, report.Primary)

	// Every order also notifies the invoicing endpoint with the same
	// payload, regardless of how the primary forward went.
	if kind == shared.SubmissionKindOrder && f.cfg.InvoiceURL != "" {
		secondary := f.post(ctx, f.cfg.InvoiceURL, body)
		f.logOutcome(shared.SubmissionKindInvoice, secondary)
		report.Secondary = &secondary
	}

	return report, nil
}

// post sends one JSON POST and captures the outcome without failing
func (f *Forwarder) post(ctx context.Context, url string, body []byte) shared.DeliveryOutcome {
	outcome := shared.DeliveryOutcome{Destination: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		outcome.Err = err
		return outcome
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer resp.Body.Close()

	outcome.StatusCode = resp.StatusCode

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxResponseBytes))
	if err != nil {
		outcome.Err = fmt.Errorf("failed to read webhook response: %w", err)
		return outcome
	}
	outcome.Body = string(respBody)

	f.logger.Debug("Webhook delivered",
		zap.String("destination", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return outcome
}

func (f *Forwarder) logOutcome(kind shared.SubmissionKind, outcome shared.DeliveryOutcome) {
	if outcome.Succeeded() {
		f.logger.Info("Webhook forward succeeded",
			zap.String("kind", kind.String()),
			zap.String("destination", outcome.Destination),
			zap.Int("status", outcome.StatusCode),
		)
		return
	}

	fields := []zap.Field{
		zap.String("kind", kind.String()),
		zap.String("destination", outcome.Destination),
		zap.Int("status", outcome.StatusCode),
	}
	if outcome.Err != nil {
		fields = append(fields, zap.Error(outcome.Err))
	}
	f.logger.Warn("Webhook forward failed", fields...)
}

var _ shared.Notifier = (*Forwarder)(nil)
