package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is wrapped by every InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError reports a field that was present but could not be coerced
// to the type its scorer needs.
type InputError struct {
	Field string
	Value any
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: field %q: %v (got %T %v)", ErrInvalidInput, e.Field, e.Err, e.Value, e.Value)
}

func (e *InputError) Unwrap() []error { return []error{ErrInvalidInput, e.Err} }

// TriState distinguishes a confirmed true or false from missing information.
type TriState int

const (
	Unknown TriState = iota
	True
	False
)

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON renders Unknown as null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*t = True
	case "false":
		*t = False
	case "null":
		*t = Unknown
	default:
		return fmt.Errorf("tri-state: unexpected value %s", data)
	}
	return nil
}

// Input field names as they appear in a raw record.
const (
	FieldNetProfitMargin         = "net_profit_margin"
	FieldCurrentRatio            = "current_ratio"
	FieldDebtToEquity            = "debt_to_equity"
	FieldBankingLimitUtilisation = "banking_limit_utilisation"
	FieldTurnoverTrend           = "turnover_trend"
	FieldAvgDaysToPay            = "avg_days_to_pay"
	FieldBouncedCheques          = "bounced_cheques_last_12m"
	FieldPastDefault             = "past_default_flag"
	FieldGSTFilingTimely         = "gst_filing_timely"
	FieldActiveLitigation        = "active_litigation"
	FieldCreditRating            = "credit_rating"
	FieldYearsInBusiness         = "years_in_business"
	FieldIndustryRisk            = "industry_risk"
	FieldTop5CustomerShare       = "top_5_customer_share"
	FieldManagementRisk          = "management_risk_flag"
)

// Input is the typed applicant record every category scorer reads.
type Input struct {
	// Financial strength
	NetProfitMargin         float64 `json:"net_profit_margin"`
	CurrentRatio            float64 `json:"current_ratio"`
	DebtToEquity            float64 `json:"debt_to_equity"`
	BankingLimitUtilisation float64 `json:"banking_limit_utilisation"`
	TurnoverTrend           string  `json:"turnover_trend"`

	// Payment behaviour
	AvgDaysToPay    int  `json:"avg_days_to_pay"`
	BouncedCheques  int  `json:"bounced_cheques_last_12m"`
	PastDefaultFlag bool `json:"past_default_flag"`

	// External checks
	GSTFilingTimely  TriState `json:"gst_filing_timely"`
	ActiveLitigation TriState `json:"active_litigation"`
	CreditRating     string   `json:"credit_rating,omitempty"`

	// Business stability
	YearsInBusiness    float64 `json:"years_in_business"`
	IndustryRisk       string  `json:"industry_risk"`
	Top5CustomerShare  float64 `json:"top_5_customer_share"`
	ManagementRiskFlag bool    `json:"management_risk_flag"`
}

// DefaultInput returns the record an empty mapping coerces to.
func DefaultInput() Input {
	return Input{
		TurnoverTrend: "stable",
		AvgDaysToPay:  45,
		IndustryRisk:  "medium",
	}
}

// ParseInput coerces a raw field mapping into an Input. Absent keys and
// nil values take their defaults, as does a blank industry_risk; a present value of the wrong kind is an
// *InputError. Fields are checked in a fixed order so the reported field
// is stable for a given record.
func ParseInput(raw map[string]any) (Input, error) {
	in := DefaultInput()
	p := parser{raw: raw}

	p.float(FieldNetProfitMargin, &in.NetProfitMargin)
	p.float(FieldCurrentRatio, &in.CurrentRatio)
	p.float(FieldDebtToEquity, &in.DebtToEquity)
	p.float(FieldBankingLimitUtilisation, &in.BankingLimitUtilisation)
	p.lower(FieldTurnoverTrend, &in.TurnoverTrend)

	p.integer(FieldAvgDaysToPay, &in.AvgDaysToPay)
	p.integer(FieldBouncedCheques, &in.BouncedCheques)
	p.boolean(FieldPastDefault, &in.PastDefaultFlag)

	p.triState(FieldGSTFilingTimely, &in.GSTFilingTimely)
	p.triState(FieldActiveLitigation, &in.ActiveLitigation)
	p.upper(FieldCreditRating, &in.CreditRating)

	p.float(FieldYearsInBusiness, &in.YearsInBusiness)
	p.lower(FieldIndustryRisk, &in.IndustryRisk)
	p.float(FieldTop5CustomerShare, &in.Top5CustomerShare)
	p.boolean(FieldManagementRisk, &in.ManagementRiskFlag)

	if p.err != nil {
		return Input{}, p.err
	}
	if in.IndustryRisk == "" {
		in.IndustryRisk = DefaultInput().IndustryRisk
	}
	return in, nil
}

// parser records the first coercion failure and skips the rest.
type parser struct {
	raw map[string]any
	err error
}

func (p *parser) lookup(field string) (any, bool) {
	if p.err != nil {
		return nil, false
	}
	v, ok := p.raw[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (p *parser) fail(field string, v any, err error) {
	p.err = &InputError{Field: field, Value: v, Err: err}
}

func (p *parser) float(field string, dst *float64) {
	v, ok := p.lookup(field)
	if !ok {
		return
	}
	f, err := toFloat(v)
	if err != nil {
		p.fail(field, v, err)
		return
	}
	*dst = f
}

func (p *parser) integer(field string, dst *int) {
	v, ok := p.lookup(field)
	if !ok {
		return
	}
	f, err := toFloat(v)
	if err != nil {
		p.fail(field, v, err)
		return
	}
	*dst = int(math.Trunc(clampCount(f)))
}

// clampCount keeps a count inside the 32-bit range so the int conversion
// cannot wrap.
func clampCount(f float64) float64 {
	return math.Max(math.MinInt32, math.Min(math.MaxInt32, f))
}

func (p *parser) boolean(field string, dst *bool) {
	v, ok := p.lookup(field)
	if !ok {
		return
	}
	b, err := toBool(v)
	if err != nil {
		p.fail(field, v, err)
		return
	}
	*dst = b
}

func (p *parser) triState(field string, dst *TriState) {
	v, ok := p.lookup(field)
	if !ok {
		return
	}
	b, err := toBool(v)
	if err != nil {
		p.fail(field, v, err)
		return
	}
	if b {
		*dst = True
	} else {
		*dst = False
	}
}

func (p *parser) lower(field string, dst *string) {
	p.str(field, dst, strings.ToLower)
}

func (p *parser) upper(field string, dst *string) {
	p.str(field, dst, strings.ToUpper)
}

func (p *parser) str(field string, dst *string, norm func(string) string) {
	v, ok := p.lookup(field)
	if !ok {
		return
	}
	s, isString := v.(string)
	if !isString {
		p.fail(field, v, errors.New("expected a string"))
		return
	}
	*dst = norm(strings.TrimSpace(s))
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errors.New("not a number")
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errors.New("not a number")
		}
		f = parsed
	default:
		return 0, errors.New("expected a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, errors.New("not a boolean")
		}
		return parsed, nil
	default:
		return false, errors.New("expected a boolean")
	}
}
