package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorders(t *testing.T) {
	m := New()

	m.UnitScanned(ResultOK)
	m.UnitScanned(ResultOK)
	m.UnitScanned(ResultFailed)
	m.AnnouncementsFound("Fizik", 3)
	m.AnnouncementsFound("Fizik", 0)
	m.Delivered(nil)
	m.Delivered(errors.New("forbidden"))
	m.Swept(4)
	m.ObserveCycle(1.5, 1710000000)

	if got := testutil.ToFloat64(m.UnitScansTotal.WithLabelValues(ResultOK)); got != 2 {
		t.Fatalf("expected 2 ok scans, got %v", got)
	}

	if got := testutil.ToFloat64(m.NewAnnouncements.WithLabelValues("Fizik")); got != 3 {
		t.Fatalf("expected 3 new announcements, got %v", got)
	}

	if got := testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues(ResultFailed)); got != 1 {
		t.Fatalf("expected 1 failed delivery, got %v", got)
	}

	if got := testutil.ToFloat64(m.SweepRemovedTotal); got != 4 {
		t.Fatalf("expected 4 swept records, got %v", got)
	}

	if got := testutil.ToFloat64(m.CyclesTotal); got != 1 {
		t.Fatalf("expected one cycle, got %v", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.UnitScanned(ResultOK)
	m.AnnouncementsFound("Fizik", 1)
	m.Delivered(nil)
	m.Swept(1)
	m.ObserveCycle(1, 1)
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.UnitScanned(ResultSkipped)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), `announcer_unit_scans_total{result="skipped"} 1`) {
		t.Fatalf("expected unit scan counter in output:\n%s", rec.Body.String())
	}
}
