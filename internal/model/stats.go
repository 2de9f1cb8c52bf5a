package model

// TrendPoint is one day of scan volume in the recent trend sequence.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// SeverityBreakdown counts scans per severity level.
type SeverityBreakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// StatsSnapshot is the aggregate statistics object served by
// /history/stats. It is treated as immutable and replaced wholesale on
// each fetch.
type StatsSnapshot struct {
	TotalScans        int               `json:"total_scans"`
	AverageRiskScore  float64           `json:"average_risk_score"`
	SeverityBreakdown SeverityBreakdown `json:"severity_breakdown"`
	ScansByType       map[string]int    `json:"scans_by_type"`
	RecentTrend       []TrendPoint      `json:"recent_trend"`
}

// DefaultStats returns the canonical all-zero snapshot substituted whenever
// a stats fetch fails, so presentation code never observes missing data.
func DefaultStats() *StatsSnapshot {
	return &StatsSnapshot{
		ScansByType: map[string]int{},
		RecentTrend: []TrendPoint{},
	}
}
