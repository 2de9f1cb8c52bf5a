package demoserver

import "github.com/finshield/console/internal/model"

// SignupRequest registers a new analyst account.
type SignupRequest struct {
	Email    string `json:"email" example:"analyst@example.com"`
	Username string `json:"username" example:"analyst"`
	Password string `json:"password" example:"hunter2hunter2"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Email    string `json:"email" example:"analyst@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

// RefreshRequest exchanges a refresh token for a fresh pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the payload of successful signup/login/refresh calls.
type AuthResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message,omitempty"`
	User         *model.User `json:"user,omitempty"`
	AccessToken  string      `json:"access_token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
}

// AnalyzeTextRequest is the JSON body of POST /analyze.
type AnalyzeTextRequest struct {
	Text string `json:"text" example:"Your account is locked, verify now"`
}

// ScanPayload is one formatted scan, shared by analyze responses, history
// items and the detail endpoint. "type" and "scan_type" carry the same
// value for compatibility with older consumers.
type ScanPayload struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	ScanType      string             `json:"scan_type"`
	InputPreview  string             `json:"input_preview"`
	RiskScore     float64            `json:"risk_score"`
	Severity      string             `json:"severity"`
	Status        string             `json:"status"`
	Timestamp     string             `json:"timestamp"`
	CreatedAt     string             `json:"created_at"`
	Explanation   *model.Explanation `json:"explanation,omitempty"`
	RiskBreakdown []model.ModelScore `json:"risk_breakdown,omitempty"`
}

// AnalyzeResponse is a ScanPayload with the explicit success flag.
type AnalyzeResponse struct {
	Success bool `json:"success"`
	ScanPayload
}

// HistoryResponse is one page of scans with pagination metadata.
type HistoryResponse struct {
	Success    bool          `json:"success"`
	Scans      []ScanPayload `json:"scans"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
}

// StatsResponse is the aggregate snapshot for /history/stats.
type StatsResponse struct {
	Success bool `json:"success"`
	model.StatsSnapshot
}

// IntelResponse wraps the threat-intel summary.
type IntelResponse struct {
	Success bool              `json:"success"`
	Data    model.IntelStatus `json:"data"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Invalid email or password"`
}
