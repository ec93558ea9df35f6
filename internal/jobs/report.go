package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/crmcore-backend/internal/logger"
)

// ReportJob aggregates store-wide totals via the API and appends one summary
// line. The revenue figure is a live aggregate computed by the service at
// read time.
type ReportJob struct {
	client  *APIClient
	logPath string
	log     *logger.Logger
	now     func() time.Time
}

func NewReportJob(client *APIClient, logPath string, log *logger.Logger) *ReportJob {
	return &ReportJob{
		client:  client,
		logPath: logPath,
		log:     log.With("job", "report"),
		now:     time.Now,
	}
}

func (rj *ReportJob) Run(ctx context.Context) error {
	totals, err := rj.client.Report(ctx)
	if err != nil {
		rj.log.Error("Report generation failed", "error", err)
		return err
	}

	line := fmt.Sprintf("%s - Report: %d customers, %d orders, $%s revenue",
		rj.now().Format(jobTimeFormat),
		totals.TotalCustomers,
		totals.TotalOrders,
		totals.TotalRevenue.StringFixed(2),
	)
	if err := appendLine(rj.logPath, line); err != nil {
		rj.log.Error("Failed to write report log", "error", err)
		return err
	}
	rj.log.Info("Report generated", "entry", line)
	return nil
}
