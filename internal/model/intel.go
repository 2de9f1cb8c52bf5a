package model

// IntelStatus is the global threat intelligence summary served by
// /intel/status. Consumed by presentation only, never by the core state
// machines.
type IntelStatus struct {
	ThreatLevel           string  `json:"threat_level"`
	RiskScoreGlobal       float64 `json:"risk_score_global"`
	RecentIndicatorsCount int     `json:"recent_indicators_count"`
	LastSync              string  `json:"last_sync"`
}
