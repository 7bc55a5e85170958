package scoring

// FinancialStrength scores margin, liquidity, leverage, bank limit usage and
// turnover trend. Ceiling 40.
func FinancialStrength(in *Input) CategoryResult {
	c := newCategory(CategoryFinancialStrength, Ceilings().FinancialStrength)
	c.add(netProfitMargin(in.NetProfitMargin))
	c.add(currentRatio(in.CurrentRatio))
	c.add(debtToEquity(in.DebtToEquity))
	c.add(bankLimitUtilisation(in.BankingLimitUtilisation))
	c.add(turnoverTrend(in.TurnoverTrend))
	return c.result()
}

// netProfitMargin, ceiling 10.
func netProfitMargin(npm float64) (string, float64, string) {
	switch {
	case npm > 10:
		return "net_profit_margin", 10, ""
	case npm > 5:
		return "net_profit_margin", 8, ""
	case npm > 2:
		return "net_profit_margin", 5, ""
	case npm > 0:
		return "net_profit_margin", 2, ""
	default:
		return "net_profit_margin", 0, "Net profit margin is very low or negative."
	}
}

// currentRatio, ceiling 8. Lower bounds are inclusive.
func currentRatio(cr float64) (string, float64, string) {
	switch {
	case cr >= 1.5:
		return "current_ratio", 8, ""
	case cr >= 1.2:
		return "current_ratio", 6, ""
	case cr >= 1.0:
		return "current_ratio", 4, ""
	default:
		return "current_ratio", 1, "Current ratio below 1.0 indicates tight liquidity."
	}
}

// debtToEquity, ceiling 8. Upper bounds are inclusive.
func debtToEquity(d2e float64) (string, float64, string) {
	switch {
	case d2e <= 1:
		return "debt_to_equity", 8, ""
	case d2e <= 2:
		return "debt_to_equity", 6, ""
	case d2e <= 3:
		return "debt_to_equity", 3, ""
	default:
		return "debt_to_equity", 0, "Debt-to-equity is very high."
	}
}

// bankLimitUtilisation, ceiling 8. The optimal band is [40, 80]; the
// (80, 90] band loses points without a reason.
func bankLimitUtilisation(util float64) (string, float64, string) {
	switch {
	case util >= 40 && util <= 80:
		return "banking_limit_utilisation", 8, ""
	case util < 40:
		return "banking_limit_utilisation", 6, "Bank limit utilisation is low; could indicate underutilisation of facilities."
	case util <= 90:
		return "banking_limit_utilisation", 5, ""
	default:
		return "banking_limit_utilisation", 2, "Bank limit utilisation consistently >90% indicates stress on working capital."
	}
}

// turnoverTrend, ceiling 6. Unrecognised trends score a neutral 3.
func turnoverTrend(trend string) (string, float64, string) {
	switch trend {
	case "improving":
		return "turnover_trend", 6, ""
	case "stable":
		return "turnover_trend", 4, ""
	case "declining":
		return "turnover_trend", 1, "Turnover trend is declining."
	default:
		return "turnover_trend", 3, ""
	}
}
