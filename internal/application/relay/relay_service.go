// Package relay implements the legacy-compatible webhook relay.
package relay

import (
	"context"
	"encoding/json"

	"github.com/smartauto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RelayService accepts `{type, payload}` relay requests and forwards the
// payload to the destination configured for that type. The response body
// of the primary forward is passed back to the caller verbatim.
type RelayService struct {
	notifier shared.Notifier
	logger   *zap.Logger
}

// NewRelayService creates a new relay service
func NewRelayService(notifier shared.Notifier, logger *zap.Logger) *RelayService {
	return &RelayService{
		notifier: notifier,
		logger:   logger,
	}
}

// RelayResult carries the raw downstream response to hand back to the caller
type RelayResult struct {
	Body       string
	StatusCode int
}

// Relay validates the type and payload, forwards, and returns the primary
// destination's raw response. Orders additionally fan out to the invoice
// destination inside the notifier; that outcome is logged but not surfaced.
func (s *RelayService) Relay(ctx context.Context, relayType string, payload json.RawMessage) (*RelayResult, error) {
	kind := shared.SubmissionKind(relayType)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_WEBHOOK_TYPE", "Invalid webhook type")
	}

	doc, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(kind, doc); err != nil {
		return nil, err
	}

	report, err := s.notifier.Notify(ctx, kind, doc)
	if err != nil {
		return nil, err
	}

	if !report.Primary.Succeeded() {
		s.logger.Warn("Relay forward failed",
			zap.String("type", relayType),
			zap.Int("status", report.Primary.StatusCode),
			zap.Error(report.Primary.Err))
		if report.Primary.Err != nil {
			return nil, shared.NewDomainError("RELAY_FAILED", report.Primary.Err.Error())
		}
	}

	return &RelayResult{
		Body:       report.Primary.Body,
		StatusCode: report.Primary.StatusCode,
	}, nil
}

func decodePayload(payload json.RawMessage) (map[string]any, error) {
	if len(payload) == 0 {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Payload is required")
	}
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Payload must be a JSON object")
	}
	return doc, nil
}

// requiredFields lists the keys a relay payload must carry per type.
// Everything beyond these passes through untouched.
var requiredFields = map[shared.SubmissionKind][]string{
	shared.SubmissionKindOrder:     {"order_code", "customer_email"},
	shared.SubmissionKindInvoice:   {"order_code"},
	shared.SubmissionKindComplaint: {"customer_email", "subject"},
	shared.SubmissionKindReview:    {"product_name", "rating"},
}

func validatePayload(kind shared.SubmissionKind, doc map[string]any) error {
	for _, field := range requiredFields[kind] {
		value, ok := doc[field]
		if !ok || value == nil {
			return shared.NewDomainError("INVALID_PAYLOAD", "Missing required field: "+field)
		}
		if s, isString := value.(string); isString && s == "" {
			return shared.NewDomainError("INVALID_PAYLOAD", "Missing required field: "+field)
		}
	}

	if kind == shared.SubmissionKindReview {
		rating, ok := doc["rating"].(float64)
		if !ok || rating < 1 || rating > 5 {
			return shared.NewDomainError("INVALID_PAYLOAD", "Rating must be between 1 and 5")
		}
	}

	return nil
}
