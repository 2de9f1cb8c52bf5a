package model

// Scan type tags accepted by the analysis service.
const (
	ScanText  = "text"
	ScanImage = "image"
	ScanAudio = "audio"
	ScanVideo = "video"
)

// Severity labels assigned by the analysis service. The console displays
// the reported label as-is and never recomputes it from the score.
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Explanation is the optional reasoning structure attached to a result.
type Explanation struct {
	FraudCategory string   `json:"fraud_category"`
	Signals       []string `json:"signals"`
	Reasoning     string   `json:"reasoning"`
	Confidence    float64  `json:"confidence"`
	ModelUsed     string   `json:"model_used"`
}

// ModelScore is one entry of the per-model risk breakdown.
type ModelScore struct {
	Model    string  `json:"model"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

// AnalysisResult is the service's answer to one analysis request. Beyond
// the risk score in [0,1] and the severity label the structure is opaque
// to the orchestration core.
type AnalysisResult struct {
	ID            string        `json:"id,omitempty"`
	ScanType      string        `json:"scan_type,omitempty"`
	InputPreview  string        `json:"input_preview,omitempty"`
	RiskScore     *float64      `json:"risk_score,omitempty"`
	Severity      string        `json:"severity,omitempty"`
	Status        string        `json:"status,omitempty"`
	Timestamp     string        `json:"timestamp,omitempty"`
	Explanation   *Explanation  `json:"explanation,omitempty"`
	RiskBreakdown []ModelScore  `json:"risk_breakdown,omitempty"`
}

// ScanRecord mirrors a persisted past result plus timestamp and preview,
// as returned by the history endpoint.
type ScanRecord struct {
	ID            string       `json:"id"`
	ScanType      string       `json:"scan_type"`
	InputPreview  string       `json:"input_preview"`
	RiskScore     float64      `json:"risk_score"`
	Severity      string       `json:"severity"`
	Status        string       `json:"status"`
	Timestamp     string       `json:"timestamp"`
	CreatedAt     string       `json:"created_at"`
	Explanation   *Explanation `json:"explanation,omitempty"`
	RiskBreakdown []ModelScore `json:"risk_breakdown,omitempty"`
}

// HistoryPage is one page of scan history with its pagination metadata.
type HistoryPage struct {
	Success    bool         `json:"success"`
	Scans      []ScanRecord `json:"scans"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalPages int          `json:"total_pages"`
}
