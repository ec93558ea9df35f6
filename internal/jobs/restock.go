package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/crmcore-backend/internal/logger"
)

const jobTimeFormat = "2006-01-02 15:04:05"

// RestockJob triggers the low-stock bulk update over the API and records the
// outcome, one line per restocked product.
type RestockJob struct {
	client  *APIClient
	logPath string
	log     *logger.Logger
	now     func() time.Time
}

func NewRestockJob(client *APIClient, logPath string, log *logger.Logger) *RestockJob {
	return &RestockJob{
		client:  client,
		logPath: logPath,
		log:     log.With("job", "restock"),
		now:     time.Now,
	}
}

func (rj *RestockJob) Run(ctx context.Context) error {
	result, err := rj.client.Restock(ctx)
	if err != nil {
		rj.log.Error("Restock trigger failed", "error", err)
		return err
	}

	timestamp := rj.now().Format(jobTimeFormat)
	lines := make([]string, 0, len(result.UpdatedProducts)+1)
	if len(result.UpdatedProducts) == 0 {
		lines = append(lines, fmt.Sprintf("[%s] %s", timestamp, result.Message))
	} else {
		for _, p := range result.UpdatedProducts {
			lines = append(lines, fmt.Sprintf("[%s] Restocked: %s (new stock: %d)", timestamp, p.Name, p.Stock))
		}
	}

	if err := appendLines(rj.logPath, lines); err != nil {
		rj.log.Error("Failed to write restock log", "error", err)
		return err
	}
	rj.log.Info("Restock trigger finished", "updated", len(result.UpdatedProducts))
	return nil
}
