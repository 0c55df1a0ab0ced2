package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pthm-cable/dilemma/strategy"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return resp.StatusCode, string(body)
}

func TestRouterHealthz(t *testing.T) {
	srv := httptest.NewServer(NewRouter(nil, nil))
	defer srv.Close()

	code, body := get(t, srv, "/healthz")
	if code != http.StatusOK || body != "ok" {
		t.Errorf("/healthz = %d %q, want 200 \"ok\"", code, body)
	}
	if code, _ := get(t, srv, "/metrics"); code != http.StatusNotFound {
		t.Errorf("/metrics without metrics = %d, want 404", code)
	}
}

func TestRouterStats(t *testing.T) {
	var latest Latest
	srv := httptest.NewServer(NewRouter(nil, &latest))
	defer srv.Close()

	if code, _ := get(t, srv, "/stats"); code != http.StatusServiceUnavailable {
		t.Errorf("/stats before first window = %d, want 503", code)
	}

	latest.Set(WindowStats{WindowEndTick: 600, Population: 42, TitForTat: 40, AlwaysDefect: 2})

	code, body := get(t, srv, "/stats")
	if code != http.StatusOK {
		t.Fatalf("/stats = %d, want 200", code)
	}
	var got WindowStats
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decoding /stats: %v", err)
	}
	if got.WindowEndTick != 600 || got.Population != 42 || got.TitForTat != 40 {
		t.Errorf("/stats = %+v", got)
	}
}

func TestMetricsExport(t *testing.T) {
	m := NewMetrics("dilemma")
	m.RecordBirth(strategy.TitForTat)
	m.RecordBirth(strategy.TitForTat)
	m.RecordDeath(strategy.AlwaysDefect, DeathStarvation)
	m.RecordRound(strategy.Cooperate, strategy.Defect)
	m.RecordRound(strategy.Defect, strategy.Cooperate)

	var counts [strategy.Count]int
	counts[strategy.GrimTrigger] = 7
	m.SetPopulation(counts, 3)

	srv := httptest.NewServer(NewRouter(m, nil))
	defer srv.Close()

	code, body := get(t, srv, "/metrics")
	if code != http.StatusOK {
		t.Fatalf("/metrics = %d, want 200", code)
	}
	for _, line := range []string{
		`dilemma_births_total{strategy="tit_for_tat"} 2`,
		`dilemma_deaths_total{cause="starvation",strategy="always_defect"} 1`,
		`dilemma_rounds_total{outcome="exploitation"} 2`,
		`dilemma_population{strategy="grim_trigger"} 7`,
		`dilemma_food_items 3`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("/metrics missing %q", line)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordBirth(strategy.Random)
	m.RecordDeath(strategy.Random, DeathOldAge)
	m.RecordRound(strategy.Cooperate, strategy.Cooperate)
	m.ObserveTick(0, 1)
	var counts [strategy.Count]int
	m.SetPopulation(counts, 0)
}
