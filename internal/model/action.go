package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType tags a remedial action variant.
type ActionType string

const (
	ActionReroute ActionType = "REROUTE"
	ActionCurtail ActionType = "CURTAIL"
	// ActionInfo carries an informational message in an empty plan.
	ActionInfo ActionType = "INFO"
)

// RemedialAction is one corrective step in a remediation plan:
// force a line offline (Reroute) or shed a fraction of system load (Curtail).
// The struct holds only data; FormatAction renders it for display.
type RemedialAction struct {
	Type ActionType
	// Line is the target line name for REROUTE actions.
	Line string
	// Fraction is the load reduction for CURTAIL actions, e.g. 0.05.
	Fraction float64
	// Message is the human-readable text for INFO actions.
	Message string
}

func Reroute(line string) RemedialAction {
	return RemedialAction{Type: ActionReroute, Line: line}
}

func Curtail(fraction float64) RemedialAction {
	return RemedialAction{Type: ActionCurtail, Fraction: fraction}
}

// FormatAction renders an action for human consumption. The core never
// depends on this string.
func FormatAction(a RemedialAction) string {
	switch a.Type {
	case ActionReroute:
		return fmt.Sprintf("Strategic Reroute: %s", a.Line)
	case ActionCurtail:
		return fmt.Sprintf("Load Curtail: -%.0f%%", a.Fraction*100)
	default:
		return a.Message
	}
}

// ParseAction is the inverse of FormatAction for REROUTE and CURTAIL
// actions. It exists so tests can verify the display form is unambiguous;
// production code never re-parses the string.
func ParseAction(s string) (RemedialAction, error) {
	if rest, ok := strings.CutPrefix(s, "Strategic Reroute: "); ok {
		return Reroute(rest), nil
	}
	if rest, ok := strings.CutPrefix(s, "Load Curtail: -"); ok {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(rest, "%"), 64)
		if err != nil {
			return RemedialAction{}, fmt.Errorf("bad curtail value %q: %w", rest, err)
		}
		return Curtail(pct / 100), nil
	}
	return RemedialAction{}, fmt.Errorf("unrecognized action format: %q", s)
}
