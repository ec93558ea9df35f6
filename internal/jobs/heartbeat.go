package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/crmcore-backend/internal/logger"
)

const heartbeatTimeFormat = "02/01/2006-15:04:05"

// HeartbeatJob appends a liveness line every run and tags it with the state
// of the trivial hello query. API failures degrade the line; they never fail
// the job.
type HeartbeatJob struct {
	client  *APIClient
	logPath string
	log     *logger.Logger
	now     func() time.Time
}

func NewHeartbeatJob(client *APIClient, logPath string, log *logger.Logger) *HeartbeatJob {
	return &HeartbeatJob{
		client:  client,
		logPath: logPath,
		log:     log.With("job", "heartbeat"),
		now:     time.Now,
	}
}

func (hj *HeartbeatJob) Run(ctx context.Context) error {
	line := hj.now().Format(heartbeatTimeFormat) + " CRM is alive"

	greeting, err := hj.client.Hello(ctx)
	switch {
	case err != nil:
		line += fmt.Sprintf(" | API: FAILED (%v)", err)
	case greeting != expectedGreeting:
		line += fmt.Sprintf(" | API: Warning (Response: %s)", greeting)
	default:
		line += " | API: OK"
	}

	if err := hj.appendStatus(line); err != nil {
		return err
	}
	hj.log.Info("Heartbeat logged", "entry", line)
	return nil
}

func (hj *HeartbeatJob) appendStatus(line string) error {
	if err := appendLine(hj.logPath, line); err != nil {
		hj.log.Error("Failed to write heartbeat log", "error", err)
		return err
	}
	return nil
}

const expectedGreeting = "Hello, CRM!"
