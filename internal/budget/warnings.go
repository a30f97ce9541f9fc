package budget

import (
	"fmt"
	"sort"
)

var warningSeverity = map[WarningLevel]int{
	WarningLow:      0,
	WarningMedium:   1,
	WarningHigh:     2,
	WarningCritical: 3,
}

func warningLevel(pct float64) WarningLevel {
	switch {
	case pct >= 100:
		return WarningCritical
	case pct >= 90:
		return WarningHigh
	case pct >= 75:
		return WarningMedium
	default:
		return WarningLow
	}
}

// LimitBasedWarnings flags categories whose spending has reached 75% of a
// user-defined limit. Categories without a limit never warn and low usage is
// not reported. Results are ordered by severity, most severe first.
func LimitBasedWarnings(breakdown []CategoryBudget) []BudgetWarning {
	out := make([]BudgetWarning, 0)
	for _, cb := range breakdown {
		if cb.LimitAmount == nil || cb.PercentageOfLimit == nil {
			continue
		}
		pct := *cb.PercentageOfLimit
		level := warningLevel(pct)
		var msg string
		switch level {
		case WarningCritical:
			msg = fmt.Sprintf("You've exceeded your budget limit for %s by %.1f%%", cb.CategoryName, pct-100)
		case WarningHigh:
			msg = fmt.Sprintf("You're approaching your budget limit for %s (%.1f%% used)", cb.CategoryName, pct)
		case WarningMedium:
			msg = fmt.Sprintf("You've used %.1f%% of your %s budget", pct, cb.CategoryName)
		default:
			continue
		}
		out = append(out, BudgetWarning{
			CategoryID:   cb.CategoryID,
			CategoryName: cb.CategoryName,
			SpentAmount:  cb.SpentAmount,
			LimitAmount:  *cb.LimitAmount,
			WarningLevel: level,
			Message:      msg,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return warningSeverity[out[a].WarningLevel] > warningSeverity[out[b].WarningLevel]
	})
	return out
}
