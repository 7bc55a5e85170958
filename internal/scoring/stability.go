package scoring

// ManagementRiskPenalty is subtracted from business stability when
// governance concerns are flagged.
const ManagementRiskPenalty = 3

// BusinessStability scores operating history, industry risk and customer
// concentration, then applies the management risk penalty before clamping
// to its ceiling of 15.
func BusinessStability(in *Input) CategoryResult {
	c := newCategory(CategoryBusinessStability, Ceilings().BusinessStability)
	c.add(yearsInBusiness(in.YearsInBusiness))
	c.add(industryRisk(in.IndustryRisk))
	c.add(customerConcentration(in.Top5CustomerShare))
	if in.ManagementRiskFlag {
		c.add("management_risk", -ManagementRiskPenalty, "Concerns flagged on management integrity / governance.")
	} else {
		c.add("management_risk", 0, "")
	}
	return c.result()
}

// yearsInBusiness, ceiling 6.
func yearsInBusiness(years float64) (string, float64, string) {
	switch {
	case years >= 10:
		return "years_in_business", 6, ""
	case years >= 5:
		return "years_in_business", 4, ""
	case years >= 2:
		return "years_in_business", 2, ""
	default:
		return "years_in_business", 0, "Limited operating history."
	}
}

// industryRisk, ceiling 5. Unrecognised values score 2, below "medium".
func industryRisk(risk string) (string, float64, string) {
	switch risk {
	case "low":
		return "industry_risk", 5, ""
	case "medium":
		return "industry_risk", 3, ""
	case "high":
		return "industry_risk", 1, "High-risk industry."
	default:
		return "industry_risk", 2, ""
	}
}

// customerConcentration, ceiling 4. A lower top-5 share is better.
func customerConcentration(share float64) (string, float64, string) {
	switch {
	case share <= 40:
		return "top_5_customer_share", 4, ""
	case share <= 60:
		return "top_5_customer_share", 3, ""
	case share <= 80:
		return "top_5_customer_share", 2, "Moderate customer concentration."
	default:
		return "top_5_customer_share", 0, "Very high dependence on few customers."
	}
}
