package scoring

// PastDefaultPenalty is subtracted from payment behaviour when the applicant
// has a recorded default or write-off.
const PastDefaultPenalty = 5

// PaymentBehaviour scores days-to-pay and cheque bounces, then applies the
// past default penalty before clamping to its ceiling of 30.
func PaymentBehaviour(in *Input) CategoryResult {
	c := newCategory(CategoryPaymentBehaviour, Ceilings().PaymentBehaviour)
	c.add(daysToPay(in.AvgDaysToPay))
	c.add(bouncedCheques(in.BouncedCheques))
	if in.PastDefaultFlag {
		c.add("past_default", -PastDefaultPenalty, "History of default / write-off reported.")
	} else {
		c.add("past_default", 0, "")
	}
	return c.result()
}

// daysToPay, ceiling 10. Upper bounds are inclusive.
func daysToPay(days int) (string, float64, string) {
	switch {
	case days <= 30:
		return "avg_days_to_pay", 10, ""
	case days <= 45:
		return "avg_days_to_pay", 8, ""
	case days <= 60:
		return "avg_days_to_pay", 5, ""
	case days <= 90:
		return "avg_days_to_pay", 2, "Average payment days are on the higher side."
	default:
		return "avg_days_to_pay", 0, "Very high average payment days."
	}
}

// bouncedCheques, ceiling 10.
func bouncedCheques(n int) (string, float64, string) {
	switch {
	case n <= 0:
		return "bounced_cheques_last_12m", 10, ""
	case n <= 2:
		return "bounced_cheques_last_12m", 7, "Some cheque bounces in last 12 months."
	case n <= 5:
		return "bounced_cheques_last_12m", 3, "Multiple cheque bounces in last 12 months."
	default:
		return "bounced_cheques_last_12m", 0, "Frequent cheque bounces in last 12 months."
	}
}
