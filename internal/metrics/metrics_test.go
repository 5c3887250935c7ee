package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// gatherOutput はレジストリの内容を/metricsのテキスト形式で取得するヘルパー。
func gatherOutput(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	return string(body)
}

func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func TestRecordEntityCreated_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordEntityCreated("user")
	c.RecordEntityCreated("user")
	c.RecordEntityCreated("post")

	output := gatherOutput(t, reg)
	if !strings.Contains(output, `socialman_entity_created_total{kind="user"} 2`) {
		t.Errorf("expected user creation count 2 in output:\n%s", output)
	}
	if !strings.Contains(output, `socialman_entity_created_total{kind="post"} 1`) {
		t.Errorf("expected post creation count 1 in output:\n%s", output)
	}
}

func TestRecordCascadeDelete_RecordsRunAndCleanups(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCascadeDelete(3)
	c.RecordCascadeDelete(2)

	output := gatherOutput(t, reg)
	if !strings.Contains(output, "socialman_cascade_delete_total 2") {
		t.Errorf("expected cascade delete count 2 in output:\n%s", output)
	}
	if !strings.Contains(output, "socialman_cascade_cleanup_ops_total 5") {
		t.Errorf("expected cleanup ops count 5 in output:\n%s", output)
	}
}

func TestRecordHTTPStatus_LabelsByStatusCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)

	output := gatherOutput(t, reg)
	if !strings.Contains(output, `socialman_http_status_total{status_code="200"} 2`) {
		t.Errorf("expected 200 count 2 in output:\n%s", output)
	}
	if !strings.Contains(output, `socialman_http_status_total{status_code="404"} 1`) {
		t.Errorf("expected 404 count 1 in output:\n%s", output)
	}
}

func TestRecordRequestLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestLatency(25 * time.Millisecond)

	output := gatherOutput(t, reg)
	if !strings.Contains(output, "socialman_request_latency_seconds_count 1") {
		t.Errorf("expected latency observation count 1 in output:\n%s", output)
	}
}
