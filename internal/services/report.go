package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/crmcore-backend/internal/logger"
	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
	"github.com/yungbote/crmcore-backend/internal/repos"
)

type ReportSummary struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

type ReportService interface {
	Summary(ctx context.Context) (*ReportSummary, error)
}

type reportService struct {
	db           *gorm.DB
	log          *logger.Logger
	customerRepo repos.CustomerRepo
	orderRepo    repos.OrderRepo
}

func NewReportService(db *gorm.DB, log *logger.Logger, customerRepo repos.CustomerRepo, orderRepo repos.OrderRepo) ReportService {
	serviceLog := log.With("service", "ReportService")
	return &reportService{db: db, log: serviceLog, customerRepo: customerRepo, orderRepo: orderRepo}
}

// Summary computes live aggregates on every read. Unlike Order.TotalAmount,
// nothing here is ever snapshotted.
func (rs *reportService) Summary(ctx context.Context) (*ReportSummary, error) {
	summary := &ReportSummary{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := rs.customerRepo.Count(gctx, nil)
		if err != nil {
			return err
		}
		summary.TotalCustomers = count
		return nil
	})
	g.Go(func() error {
		count, err := rs.orderRepo.Count(gctx, nil)
		if err != nil {
			return err
		}
		summary.TotalOrders = count
		return nil
	})
	g.Go(func() error {
		revenue, err := rs.orderRepo.RevenueSum(gctx, nil)
		if err != nil {
			return err
		}
		summary.TotalRevenue = revenue
		return nil
	})
	if err := g.Wait(); err != nil {
		rs.log.Error("Report summary failed", "error", err)
		return nil, apperrors.Systemf("computing report summary: %v", err)
	}
	return summary, nil
}
