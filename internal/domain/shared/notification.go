package shared

import "context"

// SubmissionKind identifies a customer-initiated write that is persisted
// and then forwarded to the downstream automation endpoints.
type SubmissionKind string

const (
	SubmissionKindOrder     SubmissionKind = "order"
	SubmissionKindInvoice   SubmissionKind = "invoice"
	SubmissionKindComplaint SubmissionKind = "complaint"
	SubmissionKindReview    SubmissionKind = "review"
)

// IsValid checks if the kind is a known submission kind
func (k SubmissionKind) IsValid() bool {
	switch k {
	case SubmissionKindOrder, SubmissionKindInvoice, SubmissionKindComplaint, SubmissionKindReview:
		return true
	}
	return false
}

// String returns the string representation of SubmissionKind
func (k SubmissionKind) String() string {
	return string(k)
}

// DeliveryOutcome is the result of one forward to a single destination
type DeliveryOutcome struct {
	Destination string
	StatusCode  int
	Body        string
	Err         error
}

// Succeeded reports whether the forward reached the destination with a 2xx status
func (o DeliveryOutcome) Succeeded() bool {
	return o.Err == nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// DeliveryReport aggregates the outcome of a notification, including the
// secondary invoice forward issued for orders. Secondary is nil for kinds
// that fan out to a single destination.
type DeliveryReport struct {
	Kind      SubmissionKind
	Primary   DeliveryOutcome
	Secondary *DeliveryOutcome
}

// Notifier forwards a persisted submission to its downstream destination.
// Implementations must not be treated as transactional: callers persist
// first and tolerate notification failure.
type Notifier interface {
	Notify(ctx context.Context, kind SubmissionKind, payload any) (*DeliveryReport, error)
}
