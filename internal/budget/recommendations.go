package budget

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	maxLimitSuggestions      = 3
	maxGrowthSuggestions     = 2
	unlimitedShareThreshold  = 15.0
	minSavingsRate           = 20.0
	growthChangeThreshold    = 25.0
	spendingReductionPercent = 10
)

var prioritySeverity = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
}

// GenerateRecommendations applies independent heuristics over the current
// breakdown and the trend series (oldest first). Results are ordered by
// priority, highest first.
func GenerateRecommendations(breakdown []CategoryBudget, trends []BudgetTrend, totalIncome, totalExpenses decimal.Decimal) []BudgetRecommendation {
	out := make([]BudgetRecommendation, 0)

	// large categories nobody is tracking
	suggested := 0
	for _, cb := range breakdown {
		if suggested == maxLimitSuggestions {
			break
		}
		if cb.LimitAmount != nil || cb.PercentageOfTotal <= unlimitedShareThreshold {
			continue
		}
		out = append(out, BudgetRecommendation{
			Type:         RecommendLimitAdjustment,
			CategoryID:   cb.CategoryID,
			CategoryName: cb.CategoryName,
			Message: fmt.Sprintf("%s accounts for %.1f%% of your spending. Consider setting a budget limit for it.",
				cb.CategoryName, cb.PercentageOfTotal),
			Priority: PriorityMedium,
		})
		suggested++
	}

	if totalIncome.IsPositive() && len(breakdown) > 0 {
		rate := percentOf(totalIncome.Sub(totalExpenses), totalIncome)
		if rate.LessThan(decimal.NewFromFloat(minSavingsRate)) {
			top := breakdown[0]
			for _, cb := range breakdown[1:] {
				if cb.SpentAmount.GreaterThan(top.SpentAmount) {
					top = cb
				}
			}
			savings := top.SpentAmount.Mul(decimal.NewFromInt(spendingReductionPercent)).Div(hundred)
			out = append(out, BudgetRecommendation{
				Type:         RecommendSpendingReduction,
				CategoryID:   top.CategoryID,
				CategoryName: top.CategoryName,
				Message: fmt.Sprintf("Your savings rate is %.1f%%. Cutting %s spending by %d%% would save %s.",
					roundPercent(rate), top.CategoryName, spendingReductionPercent, savings.StringFixed(2)),
				PotentialSavings: &savings,
				Priority:         PriorityHigh,
			})
		}
	}

	if len(trends) > 0 {
		latest := trends[len(trends)-1]
		flagged := 0
		for _, ct := range latest.CategoryChanges {
			if flagged == maxGrowthSuggestions {
				break
			}
			if ct.TrendDirection != TrendIncreasing || ct.ChangePercentage <= growthChangeThreshold {
				continue
			}
			out = append(out, BudgetRecommendation{
				Type:         RecommendSpendingReduction,
				CategoryID:   ct.CategoryID,
				CategoryName: ct.CategoryName,
				Message: fmt.Sprintf("Spending on %s increased by %.1f%% compared to the previous period.",
					ct.CategoryName, ct.ChangePercentage),
				Priority: PriorityMedium,
			})
			flagged++
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return prioritySeverity[out[a].Priority] > prioritySeverity[out[b].Priority]
	})
	return out
}
