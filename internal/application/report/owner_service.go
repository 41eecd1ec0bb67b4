package report

import (
	"context"

	"github.com/smartauto/backend/internal/domain/catalog"
	"github.com/smartauto/backend/internal/domain/feedback"
	"github.com/smartauto/backend/internal/domain/report"
	"github.com/smartauto/backend/internal/domain/shared"
	"github.com/smartauto/backend/internal/domain/trade"
	"github.com/smartauto/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// fullReadPageSize bounds the owner's unpaginated reads. The data sets this
// service aggregates are a single shop's history, not an unbounded stream.
const fullReadPageSize = 10000

// OwnerService serves the privileged owner read, aggregation, and export
// operations.
type OwnerService struct {
	orderRepo     trade.OrderRepository
	complaintRepo feedback.ComplaintRepository
	reviewRepo    feedback.ReviewRepository
	productRepo   catalog.ProductRepository
	backupStore   storage.BackupStore
	logger        *zap.Logger
}

// NewOwnerService creates a new owner service
func NewOwnerService(
	orderRepo trade.OrderRepository,
	complaintRepo feedback.ComplaintRepository,
	reviewRepo feedback.ReviewRepository,
	productRepo catalog.ProductRepository,
	backupStore storage.BackupStore,
	logger *zap.Logger,
) *OwnerService {
	return &OwnerService{
		orderRepo:     orderRepo,
		complaintRepo: complaintRepo,
		reviewRepo:    reviewRepo,
		productRepo:   productRepo,
		backupStore:   backupStore,
		logger:        logger,
	}
}

func fullReadFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.PageSize = fullReadPageSize
	return filter
}

// Data returns the raw record array for the requested data set.
// This is the wire-compatible privileged read path.
func (s *OwnerService) Data(ctx context.Context, dataType string) (any, error) {
	switch dataType {
	case "orders":
		orders, err := s.orderRepo.FindAll(ctx, fullReadFilter())
		if err != nil {
			return nil, err
		}
		return toOrderRecords(orders), nil
	case "complaints":
		complaints, err := s.complaintRepo.FindAll(ctx, fullReadFilter())
		if err != nil {
			return nil, err
		}
		return toComplaintRecords(complaints), nil
	case "reviews":
		reviews, err := s.reviewRepo.FindAll(ctx, fullReadFilter())
		if err != nil {
			return nil, err
		}
		return toReviewRecords(reviews), nil
	default:
		return nil, shared.NewDomainError("INVALID_DATA_TYPE", "Unknown data type: "+dataType)
	}
}

// Dashboard computes the owner landing summary over the full data set
func (s *OwnerService) Dashboard(ctx context.Context) (*DashboardResult, error) {
	orders, complaints, reviews, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindBelowStock(ctx, catalog.LowStockThreshold)
	if err != nil {
		s.logger.Error("Failed to load low stock products", zap.Error(err))
		return nil, err
	}

	dashboard := report.BuildDashboard(orders, complaints, reviews, lowStock)
	customers := report.BuildCustomerAggregates(orders, complaints, reviews)

	return &DashboardResult{
		TotalOrders:     dashboard.TotalOrders,
		TotalRevenue:    dashboard.TotalRevenue,
		PendingOrders:   dashboard.PendingOrders,
		OpenComplaints:  dashboard.OpenComplaints,
		TotalComplaints: dashboard.TotalComplaints,
		TotalReviews:    dashboard.TotalReviews,
		AverageRating:   dashboard.AverageRating,
		LowStock:        toProductRecords(dashboard.LowStock),
		Customers:       toCustomerSummaries(customers),
	}, nil
}

// Backup exports the full data set as a backup document and uploads it to
// the configured object store, returning the storage key.
func (s *OwnerService) Backup(ctx context.Context) (string, error) {
	data, err := s.ExportBackupJSON(ctx)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", shared.NewDomainError("EMPTY_BACKUP", "No data to back up")
	}

	key, err := s.backupStore.Store(ctx, data, "application/json")
	if err != nil {
		s.logger.Error("Backup upload failed", zap.Error(err))
		return "", err
	}

	s.logger.Info("Backup stored", zap.String("key", key))
	return key, nil
}

func (s *OwnerService) loadAll(ctx context.Context) ([]trade.Order, []feedback.Complaint, []feedback.Review, error) {
	orders, err := s.orderRepo.FindAll(ctx, fullReadFilter())
	if err != nil {
		s.logger.Error("Failed to load orders", zap.Error(err))
		return nil, nil, nil, err
	}
	complaints, err := s.complaintRepo.FindAll(ctx, fullReadFilter())
	if err != nil {
		s.logger.Error("Failed to load complaints", zap.Error(err))
		return nil, nil, nil, err
	}
	reviews, err := s.reviewRepo.FindAll(ctx, fullReadFilter())
	if err != nil {
		s.logger.Error("Failed to load reviews", zap.Error(err))
		return nil, nil, nil, err
	}
	return orders, complaints, reviews, nil
}
