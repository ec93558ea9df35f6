package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/crmcore-backend/internal/logger"
)

var (
	testLogOnce sync.Once
	testLog     *logger.Logger
)

func jobLogger(t *testing.T) *logger.Logger {
	t.Helper()
	testLogOnce.Do(func() {
		var err error
		testLog, err = logger.New("test")
		if err != nil {
			t.Fatalf("init logger: %v", err)
		}
	})
	return testLog
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now, err := time.Parse(time.RFC3339, "2026-03-15T08:30:00Z")
	if err != nil {
		t.Fatalf("parse fixed time: %v", err)
	}
	return now
}

func apiStub(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readLogFile(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestHeartbeatJobHealthyAPI(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/hello": `{"hello": "Hello, CRM!"}`,
	})
	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")

	job := NewHeartbeatJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLogFile(t, logPath)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := "15/03/2026-08:30:00 CRM is alive | API: OK"
	if lines[0] != want {
		t.Fatalf("line mismatch:\n got: %q\nwant: %q", lines[0], want)
	}
}

func TestHeartbeatJobDegradesOnAPIFailure(t *testing.T) {
	// Point at a closed server so the hello call fails outright.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")

	job := NewHeartbeatJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	// The API being down degrades the line but the job still succeeds.
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLogFile(t, logPath)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "15/03/2026-08:30:00 CRM is alive | API: FAILED (") {
		t.Fatalf("unexpected line: %q", lines[0])
	}
}

func TestHeartbeatJobWarnsOnUnexpectedGreeting(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/hello": `{"hello": "Howdy"}`,
	})
	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")

	job := NewHeartbeatJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLogFile(t, logPath)
	want := "15/03/2026-08:30:00 CRM is alive | API: Warning (Response: Howdy)"
	if lines[0] != want {
		t.Fatalf("line mismatch:\n got: %q\nwant: %q", lines[0], want)
	}
}

func TestHeartbeatJobAppends(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/hello": `{"hello": "Hello, CRM!"}`,
	})
	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")

	job := NewHeartbeatJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	for i := 0; i < 3; i++ {
		if err := job.Run(context.Background()); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if lines := readLogFile(t, logPath); len(lines) != 3 {
		t.Fatalf("expected 3 appended lines, got %d", len(lines))
	}
}

func TestRestockJobLogsEachProduct(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/products/restock": `{
			"updated_products": [
				{"id": "a1", "name": "Widget X", "stock": 13},
				{"id": "b2", "name": "Widget Y", "stock": 19}
			],
			"message": "Restocked 2 product(s) (+10 stock each): Widget X, Widget Y."
		}`,
	})
	logPath := filepath.Join(t.TempDir(), "restock.txt")

	job := NewRestockJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLogFile(t, logPath)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "[2026-03-15 08:30:00] Restocked: Widget X (new stock: 13)" {
		t.Fatalf("line 0: %q", lines[0])
	}
	if lines[1] != "[2026-03-15 08:30:00] Restocked: Widget Y (new stock: 19)" {
		t.Fatalf("line 1: %q", lines[1])
	}
}

func TestRestockJobLogsMessageWhenNothingUpdated(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/products/restock": `{"updated_products": [], "message": "No low-stock products found."}`,
	})
	logPath := filepath.Join(t.TempDir(), "restock.txt")

	job := NewRestockJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLogFile(t, logPath)
	if len(lines) != 1 || lines[0] != "[2026-03-15 08:30:00] No low-stock products found." {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestRestockJobFailsWhenAPIDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	logPath := filepath.Join(t.TempDir(), "restock.txt")

	job := NewRestockJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error when API is unreachable")
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("no log file expected on failure, stat err=%v", err)
	}
}

func TestReminderJobLogsRecentOrders(t *testing.T) {
	var capturedQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			http.NotFound(w, r)
			return
		}
		capturedQuery = r.URL.Query().Get("order_date_gte")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"orders": [
				{"id": "ord-1", "order_date": "2026-03-12T10:00:00Z", "customer": {"email": "alice@example.com"}},
				{"id": "ord-2", "order_date": "2026-03-14T10:00:00Z", "customer": null}
			]
		}`))
	}))
	t.Cleanup(srv.Close)
	logPath := filepath.Join(t.TempDir(), "reminders.txt")

	job := NewReminderJob(NewAPIClient(srv.URL, time.Second), logPath, 7*24*time.Hour, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantSince := fixedNow(t).Add(-7 * 24 * time.Hour).Format(time.RFC3339)
	if capturedQuery != wantSince {
		t.Fatalf("order_date_gte: got %q want %q", capturedQuery, wantSince)
	}

	lines := readLogFile(t, logPath)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	stamp := fixedNow(t).Format(time.RFC3339)
	if lines[0] != "["+stamp+"] REMINDER: Order ID ord-1 (Customer: alice@example.com)" {
		t.Fatalf("line 0: %q", lines[0])
	}
	// Orders with no attached customer fall back to N/A.
	if lines[1] != "["+stamp+"] REMINDER: Order ID ord-2 (Customer: N/A)" {
		t.Fatalf("line 1: %q", lines[1])
	}
}

func TestReminderJobNoOrdersWritesNothing(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/orders": `{"orders": []}`,
	})
	logPath := filepath.Join(t.TempDir(), "reminders.txt")

	job := NewReminderJob(NewAPIClient(srv.URL, time.Second), logPath, 7*24*time.Hour, jobLogger(t))
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatalf("no log file expected when there are no orders, stat err=%v", err)
	}
}

func TestReportJobLine(t *testing.T) {
	srv := apiStub(t, map[string]string{
		"/api/report": `{"total_customers": 5, "total_orders": 12, "total_revenue": "345.6"}`,
	})
	logPath := filepath.Join(t.TempDir(), "report.txt")

	job := NewReportJob(NewAPIClient(srv.URL, time.Second), logPath, jobLogger(t))
	job.now = func() time.Time { return fixedNow(t) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := readLogFile(t, logPath)
	want := "2026-03-15 08:30:00 - Report: 5 customers, 12 orders, $345.60 revenue"
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("line mismatch:\n got: %v\nwant: %q", lines, want)
	}
}
