package demoserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/finshield/console/internal/model"
	"github.com/finshield/console/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := NewServer(Config{
		DBPath:     ":memory:",
		JWTSecret:  "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: time.Hour,
	}, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func getAuthed(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, want, body)
	}
}

func wantDetail(t *testing.T, resp *http.Response, status int, detail string) {
	t.Helper()
	wantStatus(t, resp, status)
	got := decodeBody[ErrorResponse](t, resp)
	if got.Detail != detail {
		t.Fatalf("detail = %q, want %q", got.Detail, detail)
	}
}

// signupUser registers a fresh account and returns its token pair.
func signupUser(t *testing.T, ts *httptest.Server, email string) AuthResponse {
	t.Helper()

	resp := postJSON(t, ts.URL+"/auth/signup", "", SignupRequest{
		Email:    email,
		Username: "analyst",
		Password: "hunter2hunter2",
	})
	wantStatus(t, resp, http.StatusOK)

	auth := decodeBody[AuthResponse](t, resp)
	if !auth.Success || auth.AccessToken == "" || auth.RefreshToken == "" {
		t.Fatalf("incomplete auth response: %+v", auth)
	}
	return auth
}

// submitText runs one text analysis and returns the stored scan payload.
func submitText(t *testing.T, ts *httptest.Server, token, text string) AnalyzeResponse {
	t.Helper()

	resp := postJSON(t, ts.URL+"/analyze", token, AnalyzeTextRequest{Text: text})
	wantStatus(t, resp, http.StatusOK)
	return decodeBody[AnalyzeResponse](t, resp)
}

func multipartFile(t *testing.T, filename, contentType string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// ─── auth ───

func TestSignup_Validation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	cases := []struct {
		name   string
		req    SignupRequest
		detail string
	}{
		{"missing email", SignupRequest{Username: "u", Password: "hunter2hunter2"}, "A valid email address is required"},
		{"malformed email", SignupRequest{Email: "nope", Username: "u", Password: "hunter2hunter2"}, "A valid email address is required"},
		{"missing username", SignupRequest{Email: "a@b.example", Password: "hunter2hunter2"}, "Username is required"},
		{"short password", SignupRequest{Email: "a@b.example", Username: "u", Password: "short"}, "Password must be at least 8 characters"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resp := postJSON(t, ts.URL+"/auth/signup", "", tc.req)
			wantDetail(t, resp, http.StatusBadRequest, tc.detail)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	signupUser(t, ts, "dup@example.com")
	resp := postJSON(t, ts.URL+"/auth/signup", "", SignupRequest{
		Email:    "dup@example.com",
		Username: "other",
		Password: "hunter2hunter2",
	})
	wantDetail(t, resp, http.StatusBadRequest, "Email already registered")
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	signupUser(t, ts, "login@example.com")

	resp := postJSON(t, ts.URL+"/auth/login", "", LoginRequest{
		Email:    "login@example.com",
		Password: "hunter2hunter2",
	})
	wantStatus(t, resp, http.StatusOK)

	auth := decodeBody[AuthResponse](t, resp)
	if auth.Message != "Login successful" {
		t.Fatalf("message = %q", auth.Message)
	}
	if auth.User == nil || auth.User.Email != "login@example.com" {
		t.Fatalf("user = %+v", auth.User)
	}
	if auth.AccessToken == "" {
		t.Fatal("missing access token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	signupUser(t, ts, "wrongpw@example.com")

	resp := postJSON(t, ts.URL+"/auth/login", "", LoginRequest{
		Email:    "wrongpw@example.com",
		Password: "not-the-password",
	})
	wantDetail(t, resp, http.StatusUnauthorized, "Invalid email or password")
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/auth/login", "", LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter2hunter2",
	})
	wantDetail(t, resp, http.StatusUnauthorized, "Invalid email or password")
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "refresh@example.com")

	resp := postJSON(t, ts.URL+"/auth/refresh", "", RefreshRequest{RefreshToken: auth.RefreshToken})
	wantStatus(t, resp, http.StatusOK)

	fresh := decodeBody[AuthResponse](t, resp)
	if fresh.Message != "Tokens refreshed" {
		t.Fatalf("message = %q", fresh.Message)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Fatal("missing tokens in refresh response")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "kinds@example.com")

	// An access token is not a refresh token, even though both verify
	// against the same secret.
	resp := postJSON(t, ts.URL+"/auth/refresh", "", RefreshRequest{RefreshToken: auth.AccessToken})
	wantDetail(t, resp, http.StatusUnauthorized, "Invalid or expired refresh token")
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	t.Run("no header", func(t *testing.T) {
		t.Parallel()
		resp := postJSON(t, ts.URL+"/analyze", "", AnalyzeTextRequest{Text: "hi"})
		wantDetail(t, resp, http.StatusUnauthorized, "Not authenticated")
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		resp := postJSON(t, ts.URL+"/analyze", "not.a.jwt", AnalyzeTextRequest{Text: "hi"})
		wantDetail(t, resp, http.StatusUnauthorized, "Invalid or expired token")
	})
}

// ─── analysis ───

func TestAnalyzeText_Endpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "analyze@example.com")

	text := "enter your password at http://evil.example"
	got := submitText(t, ts, auth.AccessToken, text)

	if !got.Success {
		t.Fatal("success = false")
	}
	if got.ID == "" {
		t.Fatal("missing scan id")
	}
	if got.Type != model.ScanText || got.ScanType != model.ScanText {
		t.Fatalf("type = %q / %q", got.Type, got.ScanType)
	}
	// Scoring is deterministic, so the stored score must match a direct
	// evaluation of the same input.
	want := analyzeText(text).FinalScore
	if got.RiskScore != want {
		t.Fatalf("risk score = %v, want %v", got.RiskScore, want)
	}
	if got.Severity != severityFor(want) {
		t.Fatalf("severity = %q", got.Severity)
	}
	if got.Explanation == nil || got.Explanation.ModelUsed != "heuristic-engine-v1" {
		t.Fatalf("explanation = %+v", got.Explanation)
	}
	if len(got.RiskBreakdown) != 2 {
		t.Fatalf("breakdown = %+v", got.RiskBreakdown)
	}
	if _, err := time.Parse(time.RFC3339, got.Timestamp); err != nil {
		t.Fatalf("timestamp %q: %v", got.Timestamp, err)
	}
}

func TestAnalyzeText_EmptyInput(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "empty@example.com")

	resp := postJSON(t, ts.URL+"/analyze", auth.AccessToken, AnalyzeTextRequest{Text: "   "})
	wantDetail(t, resp, http.StatusBadRequest, "Input text cannot be empty")
}

func TestAnalyzeText_TruncatesPreview(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "preview@example.com")

	got := submitText(t, ts, auth.AccessToken, strings.Repeat("x", 500))
	if len([]rune(got.InputPreview)) != previewRunes {
		t.Fatalf("preview length = %d", len([]rune(got.InputPreview)))
	}
}

func TestUpload_Image(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "upload@example.com")

	body, contentType := multipartFile(t, "evidence.png", "image/png", []byte{0x89, 'P', 'N', 'G', 1, 2, 3})
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/analyze-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	wantStatus(t, resp, http.StatusOK)

	got := decodeBody[AnalyzeResponse](t, resp)
	if got.ScanType != model.ScanImage {
		t.Fatalf("scan type = %q", got.ScanType)
	}
	if got.InputPreview != "evidence.png" {
		t.Fatalf("preview = %q", got.InputPreview)
	}
	if got.RiskScore < 0.05 || got.RiskScore > 0.95 {
		t.Fatalf("risk score = %v", got.RiskScore)
	}
}

func TestUpload_RejectsMismatchedType(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "mime@example.com")

	body, contentType := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/analyze-image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	wantDetail(t, resp, http.StatusBadRequest, "File type 'text/plain' not allowed for image scans")
}

func TestUpload_MissingFile(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "nofile@example.com")

	resp := postJSON(t, ts.URL+"/analyze-audio", auth.AccessToken, map[string]string{})
	wantDetail(t, resp, http.StatusBadRequest, "No file provided")
}

// ─── history ───

func TestHistory_PaginationAndFilter(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "history@example.com")

	for i := 0; i < 3; i++ {
		submitText(t, ts, auth.AccessToken, fmt.Sprintf("message number %d", i))
	}

	resp := getAuthed(t, ts.URL+"/history/?page=1&per_page=2", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	page := decodeBody[HistoryResponse](t, resp)

	if page.Total != 3 || page.TotalPages != 2 || len(page.Scans) != 2 {
		t.Fatalf("page = %+v", page)
	}

	resp = getAuthed(t, ts.URL+"/history/?page=2&per_page=2", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	page = decodeBody[HistoryResponse](t, resp)
	if page.Page != 2 || len(page.Scans) != 1 {
		t.Fatalf("second page = %+v", page)
	}

	// No image scans exist, so the filtered listing is empty but valid.
	resp = getAuthed(t, ts.URL+"/history/?scan_type=image", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	page = decodeBody[HistoryResponse](t, resp)
	if page.Total != 0 || len(page.Scans) != 0 {
		t.Fatalf("filtered page = %+v", page)
	}
}

func TestHistory_EmptyAccount(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "blank@example.com")

	resp := getAuthed(t, ts.URL+"/history/", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	page := decodeBody[HistoryResponse](t, resp)
	if page.Total != 0 || page.TotalPages != 1 || page.Scans == nil {
		t.Fatalf("page = %+v", page)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "stats@example.com")

	submitText(t, ts, auth.AccessToken, "completely mundane message")
	submitText(t, ts, auth.AccessToken, "enter your password at http://evil.example")

	resp := getAuthed(t, ts.URL+"/history/stats", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	stats := decodeBody[StatsResponse](t, resp)

	if stats.TotalScans != 2 {
		t.Fatalf("total = %d", stats.TotalScans)
	}
	if stats.ScansByType[model.ScanText] != 2 {
		t.Fatalf("by type = %v", stats.ScansByType)
	}
	if stats.AverageRiskScore <= 0 {
		t.Fatalf("average = %v", stats.AverageRiskScore)
	}
	if len(stats.RecentTrend) != 7 {
		t.Fatalf("trend = %v", stats.RecentTrend)
	}
	// Both scans happened just now, so today's bucket holds them.
	if last := stats.RecentTrend[6]; last.Count != 2 {
		t.Fatalf("today = %+v", last)
	}
	counted := stats.SeverityBreakdown.Critical + stats.SeverityBreakdown.High +
		stats.SeverityBreakdown.Medium + stats.SeverityBreakdown.Low
	if counted != 2 {
		t.Fatalf("severity breakdown = %+v", stats.SeverityBreakdown)
	}
}

func TestStats_EmptyAccount(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "zero@example.com")

	resp := getAuthed(t, ts.URL+"/history/stats", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	stats := decodeBody[StatsResponse](t, resp)
	if stats.TotalScans != 0 || stats.AverageRiskScore != 0 {
		t.Fatalf("stats = %+v", stats.StatsSnapshot)
	}
	if stats.ScansByType == nil || stats.RecentTrend == nil {
		t.Fatal("collections must be present even when empty")
	}
}

func TestScanDetail(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "detail@example.com")

	created := submitText(t, ts, auth.AccessToken, "some scanned content")

	resp := getAuthed(t, ts.URL+"/history/"+created.ID, auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)
	got := decodeBody[AnalyzeResponse](t, resp)
	if got.ID != created.ID || got.RiskScore != created.RiskScore {
		t.Fatalf("detail = %+v", got)
	}
}

func TestScanDetail_NotFound(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "missing@example.com")

	resp := getAuthed(t, ts.URL+"/history/no-such-scan", auth.AccessToken)
	wantDetail(t, resp, http.StatusNotFound, "Scan not found")
}

func TestScanDetail_ScopedToOwner(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	owner := signupUser(t, ts, "owner@example.com")
	other := signupUser(t, ts, "other@example.com")

	created := submitText(t, ts, owner.AccessToken, "owner's scan")

	resp := getAuthed(t, ts.URL+"/history/"+created.ID, other.AccessToken)
	wantDetail(t, resp, http.StatusNotFound, "Scan not found")
}

// ─── profile and intel ───

func TestProfile(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	auth := signupUser(t, ts, "profile@example.com")
	submitText(t, ts, auth.AccessToken, "one scan on the books")

	resp := getAuthed(t, ts.URL+"/user/profile", auth.AccessToken)
	wantStatus(t, resp, http.StatusOK)

	profile := decodeBody[model.Profile](t, resp)
	if profile.Email != "profile@example.com" || profile.Username != "analyst" {
		t.Fatalf("profile = %+v", profile)
	}
	if profile.TotalScans != 1 {
		t.Fatalf("total scans = %d", profile.TotalScans)
	}
	if profile.Role == "" {
		t.Fatal("missing role")
	}
}

func TestIntelStatus(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	// Public endpoint, no token required.
	resp := getAuthed(t, ts.URL+"/intel/status", "")
	wantStatus(t, resp, http.StatusOK)

	intel := decodeBody[IntelResponse](t, resp)
	if !intel.Success {
		t.Fatal("success = false")
	}
	switch intel.Data.ThreatLevel {
	case model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow:
	default:
		t.Fatalf("threat level = %q", intel.Data.ThreatLevel)
	}
	if intel.Data.RiskScoreGlobal < 0.2 || intel.Data.RiskScoreGlobal > 0.9 {
		t.Fatalf("global risk = %v", intel.Data.RiskScoreGlobal)
	}
	if _, err := time.Parse(time.RFC3339, intel.Data.LastSync); err != nil {
		t.Fatalf("last sync %q: %v", intel.Data.LastSync, err)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/analyze", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}
