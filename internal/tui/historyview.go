package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/finshield/console/internal/history"
	"github.com/finshield/console/internal/model"
)

// filterCycle is the order the history filter steps through on "f".
var filterCycle = []string{
	history.FilterAll,
	model.ScanText,
	model.ScanImage,
	model.ScanAudio,
	model.ScanVideo,
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.app

	switch msg.String() {
	case "left", "h":
		page := a.History.Page() - 1
		if page < 1 {
			return m, nil
		}
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			a.History.FetchHistory(ctx, page, a.History.Filter())
			return refreshDoneMsg{}
		}

	case "right", "l":
		page := a.History.Page() + 1
		if page > a.History.Meta().TotalPages {
			return m, nil
		}
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			a.History.FetchHistory(ctx, page, a.History.Filter())
			return refreshDoneMsg{}
		}

	case "f":
		next := nextFilter(a.History.Filter())
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			a.History.SetFilter(ctx, next)
			return refreshDoneMsg{}
		}
	}

	return m, nil
}

func nextFilter(current string) string {
	for i, f := range filterCycle {
		if f == current {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return history.FilterAll
}

func (m Model) viewHistory() string {
	var b strings.Builder

	scans := m.app.History.Scans()
	meta := m.app.History.Meta()

	b.WriteString(headerStyle.Render(
		pad("When", 17)+pad("Type", 7)+pad("Severity", 10)+pad("Score", 7)+"Preview") + "\n")

	if len(scans) == 0 {
		b.WriteString(dimStyle.Render("  no scans yet") + "\n")
		// The server list is authoritative; the local side-list only
		// fills the gap when it has nothing to show.
		if cached, err := m.app.Store.CachedScans(5); err == nil && len(cached) > 0 {
			b.WriteString("\n" + dimStyle.Render("  Recently analyzed on this machine:") + "\n")
			for _, rec := range cached {
				b.WriteString(dimStyle.Render(fmt.Sprintf("    %s  %s  %.2f  %s",
					shortDate(rec.CreatedAt), rec.ScanType, rec.RiskScore,
					truncate(strings.ReplaceAll(rec.InputPreview, "\n", " "), 40))) + "\n")
			}
		}
	}

	previewWidth := m.width - 44
	if previewWidth < 16 {
		previewWidth = 16
	}

	for _, rec := range scans {
		when := rec.CreatedAt
		if len(when) > 16 {
			when = when[:16]
		}
		preview := strings.ReplaceAll(rec.InputPreview, "\n", " ")
		row := pad(when, 17) +
			pad(rec.ScanType, 7) +
			severityStyle(rec.Severity).Render(pad(rec.Severity, 10)) +
			pad(fmt.Sprintf("%.2f", rec.RiskScore), 7) +
			truncate(preview, previewWidth)
		b.WriteString(row + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"  page %d/%d  %d scans  filter: %s",
		m.app.History.Page(), meta.TotalPages, meta.Total, m.app.History.Filter())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ←/→: page  f: cycle filter"))
	return b.String()
}

func (m Model) viewOverview() string {
	stats := m.app.History.Stats()
	if stats == nil {
		return dimStyle.Render("  loading statistics...")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Dashboard") + "\n\n")

	b.WriteString(fmt.Sprintf("Total scans        %d\n", stats.TotalScans))
	b.WriteString(fmt.Sprintf("Average risk       %.2f\n", stats.AverageRiskScore))
	b.WriteString("Severity           " +
		severityCritical.Render(fmt.Sprintf("%d critical", stats.SeverityBreakdown.Critical)) + "  " +
		severityHigh.Render(fmt.Sprintf("%d high", stats.SeverityBreakdown.High)) + "  " +
		severityMedium.Render(fmt.Sprintf("%d medium", stats.SeverityBreakdown.Medium)) + "  " +
		severityLow.Render(fmt.Sprintf("%d low", stats.SeverityBreakdown.Low)) + "\n")

	if len(stats.ScansByType) > 0 {
		parts := make([]string, 0, len(stats.ScansByType))
		for _, t := range []string{model.ScanText, model.ScanImage, model.ScanAudio, model.ScanVideo} {
			if n, ok := stats.ScansByType[t]; ok {
				parts = append(parts, fmt.Sprintf("%s %d", t, n))
			}
		}
		b.WriteString("By type            " + strings.Join(parts, "  ") + "\n")
	}

	if len(stats.RecentTrend) > 0 {
		b.WriteString("\n" + dimStyle.Render("Last 7 days") + "\n")
		for _, point := range stats.RecentTrend {
			bar := strings.Repeat("█", point.Count)
			b.WriteString(fmt.Sprintf("  %s  %s %d\n", point.Date, bar, point.Count))
		}
	}

	if m.profile != nil {
		b.WriteString("\n" + dimStyle.Render("Account") + "\n")
		b.WriteString(fmt.Sprintf("  %s (%s), member since %s, %d scans total\n",
			m.profile.Username, m.profile.Role, shortDate(m.profile.CreatedAt), m.profile.TotalScans))
	}

	if m.intel != nil {
		b.WriteString("\n" + dimStyle.Render("Threat intel") + "\n")
		b.WriteString("  Global level     " + severityStyle(m.intel.ThreatLevel).Render(m.intel.ThreatLevel) + "\n")
		b.WriteString(fmt.Sprintf("  Global score     %.2f\n", m.intel.RiskScoreGlobal))
		b.WriteString(fmt.Sprintf("  Indicators (24h) %d\n", m.intel.RecentIndicatorsCount))
	}

	return b.String()
}

// shortDate keeps the date part of an RFC3339 timestamp.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-2]) + ".."
}
