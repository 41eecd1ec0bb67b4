package feedback

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ComplaintService handles complaint submission and reads
type ComplaintService struct {
	complaintRepo feedback.ComplaintRepository
	notifier      shared.Notifier
	logger        *zap.Logger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo feedback.ComplaintRepository,
	notifier shared.Notifier,
	logger *zap.Logger,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// SubmitComplaint validates, persists, and forwards a new complaint.
// The forward is best effort and never undoes the persisted record.
func (s *ComplaintService) SubmitComplaint(ctx context.Context, input SubmitComplaintInput) (*Complaint, error) {
	complaint, err := feedback.NewComplaint(
		input.UserID,
		input.CustomerName,
		input.CustomerEmail,
		input.OrderCode,
		input.Subject,
		input.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		s.logger.Error("Failed to persist complaint", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Complaint filed",
		zap.String("complaint_id", complaint.ID.String()),
		zap.String("subject", complaint.Subject))

	if report, err := s.notifier.Notify(ctx, shared.SubmissionKindComplaint, toComplaintPayload(complaint)); err != nil {
		s.logger.Warn("Complaint forward skipped",
			zap.String("complaint_id", complaint.ID.String()),
			zap.Error(err))
	} else if !report.Primary.Succeeded() {
		s.logger.Warn("Complaint forward failed downstream",
			zap.String("complaint_id", complaint.ID.String()),
			zap.Int("status", report.Primary.StatusCode))
	}

	result := toComplaint(complaint)
	return &result, nil
}

// ListUserComplaints returns the calling customer's own complaints
func (s *ComplaintService) ListUserComplaints(ctx context.Context, userID uuid.UUID) ([]Complaint, error) {
	complaints, err := s.complaintRepo.FindByUser(ctx, userID, shared.DefaultFilter())
	if err != nil {
		s.logger.Error("Failed to list user complaints", zap.Error(err))
		return nil, err
	}
	return toComplaintList(complaints), nil
}

// ListComplaints returns all complaints, optionally filtered by status
// (owner read path)
func (s *ComplaintService) ListComplaints(ctx context.Context, status string) ([]Complaint, error) {
	filter := shared.DefaultFilter()
	if status != "" {
		if !feedback.ComplaintStatus(status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown complaint status")
		}
		filter.Filters["status"] = status
	}

	complaints, err := s.complaintRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list complaints", zap.Error(err))
		return nil, err
	}
	return toComplaintList(complaints), nil
}

// ResolveComplaint marks a complaint resolved (owner operation)
func (s *ComplaintService) ResolveComplaint(ctx context.Context, complaintID uuid.UUID) (*Complaint, error) {
	complaint, err := s.complaintRepo.FindByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if err := complaint.Resolve(); err != nil {
		return nil, err
	}

	if err := s.complaintRepo.Save(ctx, complaint); err != nil {
		s.logger.Error("Failed to save complaint resolution", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Complaint resolved", zap.String("complaint_id", complaint.ID.String()))

	result := toComplaint(complaint)
	return &result, nil
}
