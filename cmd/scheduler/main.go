package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/crmcore-backend/internal/jobs"
	"github.com/yungbote/crmcore-backend/internal/logger"
	"github.com/yungbote/crmcore-backend/internal/utils"
)

// The scheduler is the external periodic caller of the CRM API: a heartbeat,
// the low-stock restock trigger, order reminders, and the weekly report. Each
// job can also be run one-shot with -run, matching cron-style deployment.
func main() {
	runOnce := flag.String("run", "", "run a single job (heartbeat|restock|reminders|report) and exit")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	apiURL := utils.GetEnv("CRM_API_URL", "http://localhost:8080", log)
	timeoutSeconds := utils.GetEnvAsInt("CRM_API_TIMEOUT", 5, log)
	client := jobs.NewAPIClient(apiURL, time.Duration(timeoutSeconds)*time.Second)

	heartbeat := jobs.NewHeartbeatJob(client, utils.GetEnv("CRM_HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt", log), log)
	restock := jobs.NewRestockJob(client, utils.GetEnv("CRM_RESTOCK_LOG", "/tmp/low_stock_updates_log.txt", log), log)
	reminders := jobs.NewReminderJob(client, utils.GetEnv("CRM_REMINDERS_LOG", "/tmp/order_reminders_log.txt", log), 7*24*time.Hour, log)
	report := jobs.NewReportJob(client, utils.GetEnv("CRM_REPORT_LOG", "/tmp/crm_report_log.txt", log), log)

	runners := map[string]func(context.Context) error{
		"heartbeat": heartbeat.Run,
		"restock":   restock.Run,
		"reminders": reminders.Run,
		"report":    report.Run,
	}

	if *runOnce != "" {
		runner, ok := runners[*runOnce]
		if !ok {
			fmt.Printf("Unknown job %q\n", *runOnce)
			os.Exit(2)
		}
		if err := runner(context.Background()); err != nil {
			log.Error("Job failed", "job", *runOnce, "error", err)
			os.Exit(1)
		}
		return
	}

	schedules := map[string]string{
		"heartbeat": utils.GetEnv("HEARTBEAT_CRON", "*/5 * * * *", log),
		"restock":   utils.GetEnv("RESTOCK_CRON", "0 */12 * * *", log),
		"reminders": utils.GetEnv("REMINDERS_CRON", "0 8 * * *", log),
		"report":    utils.GetEnv("REPORT_CRON", "0 6 * * 1", log),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := cron.New()
	for name, spec := range schedules {
		runner := runners[name]
		jobName := name
		if _, err := scheduler.AddFunc(spec, func() {
			if err := runner(ctx); err != nil {
				log.Error("Scheduled job failed", "job", jobName, "error", err)
			}
		}); err != nil {
			log.Error("Invalid cron spec", "job", jobName, "spec", spec, "error", err)
			os.Exit(1)
		}
		log.Info("Scheduled job", "job", jobName, "spec", spec)
	}

	scheduler.Start()
	defer scheduler.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Scheduler shutting down")
}
