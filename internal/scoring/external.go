package scoring

import "fmt"

// ratingScores maps external credit rating codes to points.
var ratingScores = map[string]float64{
	"AAA": 5,
	"AA":  4,
	"A":   3,
	"BBB": 2,
	"BB":  1,
	"B":   0,
	"C":   0,
}

// unratedScore applies to a missing or unrecognised rating code.
const unratedScore = 1

// ExternalChecks scores GST compliance, litigation and the external credit
// rating. Ceiling 15.
func ExternalChecks(in *Input) CategoryResult {
	c := newCategory(CategoryExternalChecks, Ceilings().ExternalChecks)
	c.add(gstFiling(in.GSTFilingTimely))
	c.add(litigation(in.ActiveLitigation))
	c.add(externalRating(in.CreditRating))
	return c.result()
}

// gstFiling, ceiling 5. Unknown sits between a confirmed yes and no.
func gstFiling(timely TriState) (string, float64, string) {
	switch timely {
	case True:
		return "gst_filing_timely", 5, ""
	case False:
		return "gst_filing_timely", 1, "GST filing not timely."
	default:
		return "gst_filing_timely", 3, ""
	}
}

// litigation, ceiling 5.
func litigation(active TriState) (string, float64, string) {
	switch active {
	case False:
		return "active_litigation", 5, ""
	case True:
		return "active_litigation", 1, "Active litigation / legal disputes reported."
	default:
		return "active_litigation", 3, ""
	}
}

// externalRating, ceiling 5. code is already upper-cased.
func externalRating(code string) (string, float64, string) {
	if code == "" {
		return "credit_rating", unratedScore, ""
	}
	score, ok := ratingScores[code]
	if !ok {
		return "credit_rating", unratedScore, ""
	}
	if code == "B" || code == "C" {
		return "credit_rating", score, fmt.Sprintf("Weak external rating (%s).", code)
	}
	return "credit_rating", score, ""
}
