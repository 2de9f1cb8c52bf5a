package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finshield/console/internal/interfaces"
	"github.com/finshield/console/internal/localstore"
	"github.com/finshield/console/internal/model"
	"github.com/finshield/console/internal/session"
	"github.com/finshield/console/internal/testutil"
)

func newTestGateway(t *testing.T, handler http.Handler, tokens *testutil.StaticTokens, expiry *testutil.ExpiryRecorder) *Gateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	// Avoid wrapping typed nil pointers in non-nil interface values; the
	// gateway's nil checks must see a truly nil interface.
	var tokenProvider interfaces.TokenProvider
	if tokens != nil {
		tokenProvider = tokens
	}
	var expiryListener interfaces.ExpiryListener
	if expiry != nil {
		expiryListener = expiry
	}

	return New(Config{BaseURL: srv.URL}, tokenProvider, expiryListener, &testutil.DummyLogger{}, srv.Client())
}

// ─── Success path ──────────────────────────────────────────────────────

func TestGateway_SuccessEnvelope(t *testing.T) {
	t.Parallel()

	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "value": 7}`))
	}), nil, nil)

	env := gw.Get(context.Background(), "/thing")
	if !env.Success {
		t.Fatalf("expected success envelope, got message %q", env.Message)
	}
	if env.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", env.StatusCode)
	}

	var body struct {
		Value int `json:"value"`
	}
	if err := env.Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Value != 7 {
		t.Errorf("decoded value = %d, want 7", body.Value)
	}
}

func TestGateway_BearerTokenAttachedAndTrimmed(t *testing.T) {
	t.Parallel()

	var gotAuth string
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), &testutil.StaticTokens{Token: "  tok-123  "}, nil)

	gw.Get(context.Background(), "/thing")
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestGateway_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	var present bool
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}), &testutil.StaticTokens{Token: ""}, nil)

	gw.Get(context.Background(), "/thing")
	if present {
		t.Error("Authorization header sent despite empty token")
	}
}

// ─── Failure paths ─────────────────────────────────────────────────────

func TestGateway_NetworkErrorEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable origin

	gw := New(Config{BaseURL: srv.URL}, nil, nil, &testutil.DummyLogger{}, nil)
	env := gw.Get(context.Background(), "/thing")
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Message != "Network error — is the server running?" {
		t.Errorf("Message = %q", env.Message)
	}
}

func TestGateway_InvalidJSONEnvelope(t *testing.T) {
	t.Parallel()

	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}), nil, nil)

	env := gw.Get(context.Background(), "/thing")
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Message != "Invalid server response" {
		t.Errorf("Message = %q", env.Message)
	}
}

func TestGateway_ErrorStatusExtractsMessage(t *testing.T) {
	t.Parallel()

	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Input text cannot be empty"}`))
	}), nil, nil)

	env := gw.Post(context.Background(), "/analyze", map[string]string{"text": ""})
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Message != "Input text cannot be empty" {
		t.Errorf("Message = %q", env.Message)
	}
	if env.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", env.StatusCode)
	}
}

// ─── 401 side channel ──────────────────────────────────────────────────

func TestGateway_Unauthorized_FiresExpiryOnce(t *testing.T) {
	t.Parallel()

	expiry := &testutil.ExpiryRecorder{}
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Not authenticated"}`))
	}), &testutil.StaticTokens{Token: "stale"}, expiry)

	env := gw.Get(context.Background(), "/history/stats")
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Message != "Session expired. Please sign in again." {
		t.Errorf("Message = %q", env.Message)
	}
	if expiry.Fired() != 1 {
		t.Errorf("expiry fired %d times, want 1", expiry.Fired())
	}
}

func TestGateway_Unauthorized_AuthPathIsCredentialError(t *testing.T) {
	t.Parallel()

	expiry := &testutil.ExpiryRecorder{}
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid email or password"}`))
	}), nil, expiry)

	env := gw.Post(context.Background(), "/auth/login", map[string]string{})
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	// A rejected login is not an expired session.
	if env.Message != "Invalid email or password" {
		t.Errorf("Message = %q", env.Message)
	}
	if expiry.Fired() != 0 {
		t.Errorf("expiry fired %d times, want 0", expiry.Fired())
	}
}

// ─── Upload ────────────────────────────────────────────────────────────

func TestGateway_UploadMultipartField(t *testing.T) {
	t.Parallel()

	var gotField, gotName, gotContent string
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			gotField = "file"
			gotName = header.Filename
			buf := make([]byte, 64)
			n, _ := file.Read(buf)
			gotContent = string(buf[:n])
		}
		w.Write([]byte(`{"success": true}`))
	}), nil, nil)

	env := gw.Upload(context.Background(), "/analyze-image", "evidence.png", strings.NewReader("png-bytes"))
	if !env.Success {
		t.Fatalf("upload failed: %q", env.Message)
	}
	if gotField != "file" || gotName != "evidence.png" || gotContent != "png-bytes" {
		t.Errorf("got field=%q name=%q content=%q", gotField, gotName, gotContent)
	}
}

// ─── Session persistence on 401 ────────────────────────────────────────

// A 401 on a data endpoint flags the session as expired but must never
// touch the persisted credentials: the token in the local store is what
// lets the next launch attempt a silent refresh.
func TestGateway_UnauthorizedKeepsPersistedToken(t *testing.T) {
	t.Parallel()

	logger := &testutil.DummyLogger{}
	store, err := localstore.Open(":memory:", logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions := session.NewManager(store, logger)
	sessions.Restore()
	if err := sessions.Login(&model.User{ID: "u1", Username: "casey"}, "tok-live", "refresh-live"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	expiry := &testutil.ExpiryRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	}))
	t.Cleanup(srv.Close)

	gw := New(Config{BaseURL: srv.URL}, sessions, expiry, logger, srv.Client())

	env := gw.Get(context.Background(), "/history/stats")
	if env.Success {
		t.Fatal("expected failure envelope")
	}
	if env.Message != "Session expired. Please sign in again." {
		t.Errorf("Message = %q", env.Message)
	}
	if expiry.Fired() != 1 {
		t.Errorf("expiry fired %d times, want 1", expiry.Fired())
	}

	// The in-memory session and the persisted token both survive.
	if !sessions.Authenticated() {
		t.Error("session dropped on 401")
	}
	if got := sessions.AccessToken(); got != "tok-live" {
		t.Errorf("AccessToken = %q, want tok-live", got)
	}
	persisted, ok, err := store.Get("finshield_token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || persisted != "tok-live" {
		t.Errorf("persisted token = %q ok=%v, want tok-live", persisted, ok)
	}
}
