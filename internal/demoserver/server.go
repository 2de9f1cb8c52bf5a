// Package demoserver is a self-contained stand-in for the FinShield
// analysis service. It speaks the same HTTP contract the console consumes,
// backed by SQLite, JWT auth and a heuristic scoring engine, so the
// console can be exercised end to end without the production backend.
package demoserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/finshield/console/docs" // swagger docs registration
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
)

const (
	maxUploadBytes = 25 << 20
	previewRunes   = 100
	minPasswordLen = 8
)

type ctxKey int

const userContextKey ctxKey = iota

// Server is the HTTP API surface of the demo analysis service.
type Server struct {
	cfg    Config
	store  *Store
	tokens *TokenIssuer
	intel  *ThreatIntel
	router chi.Router
	logger logging.Logger
}

// NewServer opens the backing store and wires the routes.
func NewServer(cfg Config, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewStderrLogger("DemoServer")
	}

	store, err := OpenStore(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		tokens: NewTokenIssuer(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL),
		intel:  NewThreatIntel(),
		router: chi.NewRouter(),
		logger: logger,
	}
	s.routes()
	return s, nil
}

// Store returns the underlying store for seeding in tests.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/refresh", s.handleRefresh)
	r.Get("/intel/status", s.handleIntelStatus)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/analyze", s.handleAnalyzeText)
		r.Post("/analyze-image", s.handleUpload(model.ScanImage))
		r.Post("/analyze-audio", s.handleUpload(model.ScanAudio))
		r.Post("/analyze-video", s.handleUpload(model.ScanVideo))

		r.Get("/history/", s.handleHistory)
		r.Get("/history/stats", s.handleStats)
		r.Get("/history/{scanID}", s.handleScanDetail)

		r.Get("/user/profile", s.handleProfile)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuth resolves the Bearer token into a user before the handler
// runs. Every failure mode answers 401 with a detail message, matching
// what the console's gateway expects from the production service.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := s.tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := s.store.UserByID(r.Context(), userID)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUser(r *http.Request) *userRecord {
	u, _ := r.Context().Value(userContextKey).(*userRecord)
	return u
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.RawQuery; q != "" {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}
	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Close releases the backing store.
func (s *Server) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// ─── JSON helpers ───

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func toUser(u *userRecord) *model.User {
	return &model.User{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func formatScan(scan *storedScan) ScanPayload {
	ts := scan.CreatedAt.UTC().Format(time.RFC3339)
	return ScanPayload{
		ID:            scan.ID,
		Type:          scan.ScanType,
		ScanType:      scan.ScanType,
		InputPreview:  scan.InputPreview,
		RiskScore:     scan.RiskScore,
		Severity:      scan.Severity,
		Status:        scan.Status,
		Timestamp:     ts,
		CreatedAt:     ts,
		Explanation:   scan.Explanation,
		RiskBreakdown: scan.Breakdown,
	}
}

func previewOf(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes])
}

// ─── Auth handlers ───

// handleSignup registers an account and returns a token pair.
//
//	@Summary	Register a new analyst account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		SignupRequest	true	"Account details"
//	@Success	200		{object}	AuthResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/auth/signup [post]
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		writeDetail(w, http.StatusBadRequest, "A valid email address is required")
		return
	case req.Username == "":
		writeDetail(w, http.StatusBadRequest, "Username is required")
		return
	case len(req.Password) < minPasswordLen:
		writeDetail(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Email, req.Username, string(hash))
	if errors.Is(err, ErrEmailTaken) {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.logger.Warn("creating user", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	s.respondWithTokens(w, user, "Account created")
}

// handleLogin exchanges credentials for a token pair.
//
//	@Summary	Log in with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	AuthResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.UserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.respondWithTokens(w, user, "Login successful")
}

// handleRefresh rotates a refresh token into a fresh pair.
//
//	@Summary	Refresh the token pair
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RefreshRequest	true	"Refresh token"
//	@Success	200		{object}	AuthResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}
	user, err := s.store.UserByID(r.Context(), userID)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	s.respondWithTokens(w, user, "Tokens refreshed")
}

func (s *Server) respondWithTokens(w http.ResponseWriter, user *userRecord, message string) {
	access, refresh, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Warn("issuing tokens", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to issue tokens")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success:      true,
		Message:      message,
		User:         toUser(user),
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// ─── Analysis handlers ───

// handleAnalyzeText scores a text submission.
//
//	@Summary	Analyze text for fraud signals
//	@Tags		analysis
//	@Accept		json
//	@Produce	json
//	@Param		body	body		AnalyzeTextRequest	true	"Text to analyze"
//	@Success	200		{object}	AnalyzeResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/analyze [post]
func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeDetail(w, http.StatusBadRequest, "Input text cannot be empty")
		return
	}

	analysis := analyzeText(req.Text)
	scan := &storedScan{
		ID:           uuid.New().String(),
		UserID:       requestUser(r).ID,
		ScanType:     model.ScanText,
		InputPreview: previewOf(req.Text),
		RiskScore:    analysis.FinalScore,
		Severity:     severityFor(analysis.FinalScore),
		Status:       "completed",
		Explanation:  explanationFor(model.ScanText, analysis.FinalScore, analysis.Signals, analysis.Categories),
		Breakdown: []model.ModelScore{
			{Model: "fraud-text-classifier", Score: analysis.ModelScore, Category: "ai_inference"},
			{Model: "heuristic-engine-v1", Score: analysis.HeuristicScore, Category: "rule_engine"},
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.SaveScan(r.Context(), scan); err != nil {
		s.logger.Warn("saving scan", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to store scan")
		return
	}

	s.logger.Info("analyzed text",
		logging.Field{Key: "scan_id", Value: scan.ID},
		logging.Field{Key: "risk_score", Value: scan.RiskScore})
	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, ScanPayload: formatScan(scan)})
}

// handleUpload builds the media scan handler for one scan type. The
// uploaded MIME type must match the endpoint; a JPEG posted to the audio
// endpoint is rejected, not coerced.
//
//	@Summary	Analyze an uploaded media file
//	@Tags		analysis
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"Media file"
//	@Success	200		{object}	AnalyzeResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/analyze-image [post]
func (s *Server) handleUpload(scanType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "No file provided")
			return
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Failed to read upload")
			return
		}
		if len(content) > maxUploadBytes {
			writeDetail(w, http.StatusBadRequest, "File too large")
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}
		if !strings.HasPrefix(contentType, scanType+"/") {
			writeDetail(w, http.StatusBadRequest,
				fmt.Sprintf("File type '%s' not allowed for %s scans", contentType, scanType))
			return
		}

		score := scoreFile(content)
		scan := &storedScan{
			ID:           uuid.New().String(),
			UserID:       requestUser(r).ID,
			ScanType:     scanType,
			InputPreview: header.Filename,
			RiskScore:    score,
			Severity:     severityFor(score),
			Status:       "completed",
			Explanation:  explanationFor(scanType, score, nil, nil),
			Breakdown: []model.ModelScore{
				{Model: scanType + "-detector-sim", Score: score, Category: "media_analysis"},
			},
			CreatedAt: time.Now().UTC(),
		}

		if err := s.store.SaveScan(r.Context(), scan); err != nil {
			s.logger.Warn("saving scan", logging.Field{Key: "error", Value: err.Error()})
			writeDetail(w, http.StatusInternalServerError, "Failed to store scan")
			return
		}

		s.logger.Info("analyzed upload",
			logging.Field{Key: "scan_id", Value: scan.ID},
			logging.Field{Key: "scan_type", Value: scanType},
			logging.Field{Key: "risk_score", Value: score})
		writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, ScanPayload: formatScan(scan)})
	}
}

// ─── History handlers ───

// handleHistory serves one page of the user's scans.
//
//	@Summary	List past scans
//	@Tags		history
//	@Produce	json
//	@Param		page		query		int		false	"Page number"
//	@Param		per_page	query		int		false	"Page size (max 50)"
//	@Param		scan_type	query		string	false	"Filter by scan type"
//	@Success	200			{object}	HistoryResponse
//	@Security	BearerAuth
//	@Router		/history/ [get]
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := intQuery(r, "per_page", 10)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > 50 {
		perPage = 50
	}
	scanType := r.URL.Query().Get("scan_type")

	scans, total, page, err := s.store.History(r.Context(), requestUser(r).ID, page, perPage, scanType)
	if err != nil {
		s.logger.Warn("listing history", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to load history")
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}

	formatted := make([]ScanPayload, 0, len(scans))
	for _, scan := range scans {
		formatted = append(formatted, formatScan(scan))
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Success:    true,
		Scans:      formatted,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	})
}

// handleStats aggregates the user's scans into the dashboard snapshot.
//
//	@Summary	Aggregate scan statistics
//	@Tags		history
//	@Produce	json
//	@Success	200	{object}	StatsResponse
//	@Security	BearerAuth
//	@Router		/history/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	scans, err := s.store.AllScans(r.Context(), requestUser(r).ID)
	if err != nil {
		s.logger.Warn("loading stats", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	snapshot := model.StatsSnapshot{
		TotalScans:  len(scans),
		ScansByType: map[string]int{},
		RecentTrend: []model.TrendPoint{},
	}

	var sum float64
	for _, scan := range scans {
		sum += scan.RiskScore
		snapshot.ScansByType[scan.ScanType]++
		switch scan.Severity {
		case model.SeverityCritical:
			snapshot.SeverityBreakdown.Critical++
		case model.SeverityHigh:
			snapshot.SeverityBreakdown.High++
		case model.SeverityMedium:
			snapshot.SeverityBreakdown.Medium++
		default:
			snapshot.SeverityBreakdown.Low++
		}
	}
	if len(scans) > 0 {
		snapshot.AverageRiskScore = math.Round(sum/float64(len(scans))*100) / 100
	}

	// Daily volume for the trailing week, oldest day first.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		point := model.TrendPoint{Date: day.Format("01/02")}
		for _, scan := range scans {
			if scan.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(day) {
				point.Count++
			}
		}
		snapshot.RecentTrend = append(snapshot.RecentTrend, point)
	}

	writeJSON(w, http.StatusOK, StatsResponse{Success: true, StatsSnapshot: snapshot})
}

// handleScanDetail serves one stored scan.
//
//	@Summary	Fetch one scan by ID
//	@Tags		history
//	@Produce	json
//	@Param		scanID	path		string	true	"Scan ID"
//	@Success	200		{object}	AnalyzeResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/history/{scanID} [get]
func (s *Server) handleScanDetail(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	scan, err := s.store.ScanByID(r.Context(), requestUser(r).ID, scanID)
	if errors.Is(err, ErrScanNotFound) {
		writeDetail(w, http.StatusNotFound, "Scan not found")
		return
	}
	if err != nil {
		s.logger.Warn("loading scan", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to load scan")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, ScanPayload: formatScan(scan)})
}

// ─── Profile and intel handlers ───

// handleProfile serves the authenticated analyst's profile.
//
//	@Summary	Current analyst profile
//	@Tags		user
//	@Produce	json
//	@Success	200	{object}	model.Profile
//	@Security	BearerAuth
//	@Router		/user/profile [get]
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	total, err := s.store.CountScans(r.Context(), user.ID)
	if err != nil {
		s.logger.Warn("counting scans", logging.Field{Key: "error", Value: err.Error()})
		writeDetail(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		model.Profile
	}{
		Success: true,
		Profile: model.Profile{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			Role:       user.Role,
			CreatedAt:  user.CreatedAt,
			TotalScans: total,
		},
	})
}

// handleIntelStatus serves the simulated global threat snapshot.
//
//	@Summary	Global threat intelligence status
//	@Tags		intel
//	@Produce	json
//	@Success	200	{object}	IntelResponse
//	@Router		/intel/status [get]
func (s *Server) handleIntelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IntelResponse{Success: true, Data: s.intel.Status()})
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
