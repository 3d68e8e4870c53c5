package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tnunamak/codexmeter/internal/api"
	"github.com/tnunamak/codexmeter/internal/severity"
)

type Mode int

const (
	ModeFancy Mode = iota
	ModePlain
)

func (m Mode) String() string {
	if m == ModePlain {
		return "plain"
	}
	return "fancy"
}

const (
	barWidth  = 28
	ruleWidth = 67
)

var (
	styleAccent = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	stylePlan   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleLabel  = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleCrit   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

type window struct {
	label string
	w     *api.RateWindow
}

func windows(s *api.UsageSnapshot) []window {
	return []window{
		{"5-hour session", s.PrimaryWindow},
		{"7-day rolling", s.SecondaryWindow},
	}
}

// Render formats a snapshot. It has no side effects.
func Render(s *api.UsageSnapshot, mode Mode) string {
	if mode == ModePlain {
		return renderPlain(s)
	}
	return renderFancy(s)
}

func renderPlain(s *api.UsageSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan: %s\n", strings.ToUpper(s.Plan()))
	plainWindow(&b, "5hr window", s.PrimaryWindow)
	plainWindow(&b, "7day window", s.SecondaryWindow)
	if s.IsLimitReached() {
		b.WriteString("Status: LIMIT REACHED\n")
	}
	return b.String()
}

func plainWindow(b *strings.Builder, label string, w *api.RateWindow) {
	if w == nil {
		fmt.Fprintf(b, "%s: N/A\n", label)
		return
	}
	reset := "—"
	if w.ResetAfterSeconds != nil {
		reset = fmt.Sprintf("%ds", *w.ResetAfterSeconds)
	}
	fmt.Fprintf(b, "%s: %.1f%% used  Resets in: %s\n", label, math.Min(w.Used(), 100), reset)
}

func renderFancy(s *api.UsageSnapshot) string {
	var b strings.Builder
	rule := "  " + styleDim.Render(strings.Repeat("─", ruleWidth)) + "\n"

	fmt.Fprintf(&b, "  %s OpenAI %s Plan · Codex Usage Limits\n",
		styleAccent.Render("◆"), stylePlan.Render(strings.ToUpper(s.Plan())))
	b.WriteString(rule)

	highest := 0.0
	for _, win := range windows(s) {
		label := fmt.Sprintf("%-18s", win.label)
		if win.w == nil {
			fmt.Fprintf(&b, "  %s %s\n", label, styleDim.Render("not available"))
			continue
		}
		highest = math.Max(highest, win.w.Used())
		pct := math.Min(win.w.Used(), 100)
		style := levelStyle(severity.Classify(pct, false))
		fmt.Fprintf(&b, "  %s %s %s resets %s\n",
			styleLabel.Render(label),
			style.Render(Bar(pct, barWidth)),
			style.Render(fmt.Sprintf("%5.1f%%", pct)),
			styledReset(win.w.ResetAfterSeconds))
	}
	b.WriteString(rule)

	level := severity.Classify(highest, s.IsLimitReached())
	fmt.Fprintf(&b, "\n  %s %s\n", levelStyle(level).Render(level.Indicator()), level.Summary())
	return b.String()
}

func levelStyle(l severity.Level) lipgloss.Style {
	switch l {
	case severity.LevelOK:
		return styleOK
	case severity.LevelElevated:
		return styleWarn
	default:
		return styleCrit
	}
}

// Bar draws a proportional bar of width cells. The filled count is clamped
// to [0, width].
func Bar(pct float64, width int) string {
	filled := int(math.Round(pct / 100 * float64(width)))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatReset renders seconds until reset with its two most significant units.
func FormatReset(secs uint64) string {
	if secs == 0 {
		return "now"
	}
	mins := secs / 60
	hours := mins / 60
	days := hours / 24
	switch {
	case days > 0:
		return fmt.Sprintf("in %dd %dh", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("in %dh %dm", hours, mins%60)
	default:
		return fmt.Sprintf("in %dm", mins)
	}
}

func styledReset(secs *uint64) string {
	switch {
	case secs == nil:
		return styleDim.Render("—")
	case *secs == 0:
		return styleOK.Render("now")
	case *secs < 3600:
		return styleWarn.Render(FormatReset(*secs))
	default:
		return FormatReset(*secs)
	}
}
