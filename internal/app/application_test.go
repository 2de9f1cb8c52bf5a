package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finshield/console/internal/gateway"
	"github.com/finshield/console/internal/interfaces"
	"github.com/finshield/console/internal/model"
	"github.com/finshield/console/internal/scan"
)

// newTestApplication wires a full Application against a fake analysis
// service and an in-memory local store.
func newTestApplication(t *testing.T, handler http.Handler) *Application {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &Config{
		GatewayCfg: gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second},
		StorePath:  ":memory:",
		ToastTTL:   time.Minute,
	}
	a, err := NewApplication(cfg, nil, interfaces.NewTestLogger(false))
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func analysisServiceHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "id": "s1", "scan_type": "text", "risk_score": 0.42, "severity": "MEDIUM"}`))
	})
	mux.HandleFunc("/history/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "total_scans": 1, "average_risk_score": 0.42}`))
	})
	mux.HandleFunc("/history/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"scans": [{"id": "s1", "scan_type": "text", "input_preview": "confidential case notes", "risk_score": 0.42, "severity": "MEDIUM"}],
			"total": 1, "page": 1, "per_page": 15, "total_pages": 1
		}`))
	})
	return mux
}

// ─── Logout ────────────────────────────────────────────────────────────

func TestLogout_ResetsEveryStore(t *testing.T) {
	t.Parallel()

	a := newTestApplication(t, analysisServiceHandler())
	ctx := context.Background()

	if err := a.Sessions.Login(&model.User{ID: "u1", Username: "casey", Email: "casey@example.com", Role: "user"}, "tok", "refresh"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	a.History.Refresh(ctx)
	a.Scans.SubmitText(ctx, "wire the funds now http://pay.example/claim")

	// The stores hold the signed-in user's data before logout.
	if len(a.History.Scans()) != 1 {
		t.Fatalf("scans before logout = %d, want 1", len(a.History.Scans()))
	}
	if a.History.Stats() == nil {
		t.Fatal("stats not resolved before logout")
	}
	if a.Scans.State() != scan.StateSucceeded || a.Scans.Result() == nil {
		t.Fatalf("submission state = %v result = %v", a.Scans.State(), a.Scans.Result())
	}
	if a.Notify.Current() == nil {
		t.Fatal("expected a scan-complete toast before logout")
	}

	a.Sessions.Logout()

	if a.Sessions.Authenticated() {
		t.Error("still authenticated after logout")
	}
	if got := a.History.Scans(); len(got) != 0 {
		t.Errorf("scans survived logout: %+v", got)
	}
	if a.History.Stats() != nil {
		t.Error("stats survived logout")
	}
	if a.History.Page() != 1 {
		t.Errorf("page after logout = %d, want 1", a.History.Page())
	}
	if a.Scans.State() != scan.StateIdle {
		t.Errorf("submission state after logout = %v, want idle", a.Scans.State())
	}
	if a.Scans.Result() != nil {
		t.Error("analysis result survived logout")
	}
	if a.Notify.Current() != nil {
		t.Error("toast survived logout")
	}
}

func TestLogout_NextLoginStartsClean(t *testing.T) {
	t.Parallel()

	a := newTestApplication(t, analysisServiceHandler())
	ctx := context.Background()

	if err := a.Sessions.Login(&model.User{ID: "u1", Username: "casey"}, "tok", "refresh"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	a.History.Refresh(ctx)
	a.Sessions.Logout()

	if err := a.Sessions.Login(&model.User{ID: "u2", Username: "riley"}, "tok2", "refresh2"); err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if got := a.History.Scans(); len(got) != 0 {
		t.Errorf("new session sees %d scans before its first fetch", len(got))
	}
	if a.History.Stats() != nil {
		t.Error("new session sees the previous session's stats")
	}
}
