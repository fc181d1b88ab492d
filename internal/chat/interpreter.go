package chat

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Policy levers the simulation engine understands.
const (
	LeverCarbonTax              = "carbon_tax"
	LeverPublicTransportSubsidy = "public_transport_subsidy"
	LeverWaterPriceFactor       = "water_price_factor"
)

// PolicyBundle is a question reduced to simulation levers. Zero means "not mentioned".
type PolicyBundle struct {
	CarbonTax              float64 `json:"carbon_tax" jsonschema_description:"Carbon tax rate as a fraction between 0 and 1, 0 when not mentioned"`
	PublicTransportSubsidy float64 `json:"public_transport_subsidy" jsonschema_description:"Public transport subsidy as a fraction between 0 and 1, 0 when not mentioned"`
	WaterPriceFactor       float64 `json:"water_price_factor" jsonschema_description:"Multiplier on the water tariff (1 = unchanged), 0 when not mentioned"`
	Summary                string  `json:"summary" jsonschema_description:"One sentence restating the proposed policy in the user's language"`
}

// Policy returns the non-zero levers in the shape /api/simulate expects.
func (b *PolicyBundle) Policy() map[string]float64 {
	p := map[string]float64{}
	if b == nil {
		return p
	}
	if b.CarbonTax != 0 {
		p[LeverCarbonTax] = b.CarbonTax
	}
	if b.PublicTransportSubsidy != 0 {
		p[LeverPublicTransportSubsidy] = b.PublicTransportSubsidy
	}
	if b.WaterPriceFactor != 0 {
		p[LeverWaterPriceFactor] = b.WaterPriceFactor
	}
	return p
}

// Empty reports whether no lever was recognised.
func (b *PolicyBundle) Empty() bool {
	return len(b.Policy()) == 0
}

func (b *PolicyBundle) String() string {
	p := b.Policy()
	if len(p) == 0 {
		return "no policy levers"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, p[k]))
	}
	return strings.Join(parts, ", ")
}

// Interpreter turns a free-text question into a PolicyBundle.
type Interpreter interface {
	Interpret(ctx context.Context, question string) (*PolicyBundle, error)
}

// Default magnitudes when a lever is named without a number.
const (
	defaultCarbonTax  = 0.2
	defaultSubsidy    = 0.3
	defaultWaterPrice = 1.5
)

var (
	numberPattern = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(%|x\b|percent)?`)
	clauseSplit   = regexp.MustCompile(`[.?!;,](?:\s|$)|\s+and\s+|\s+while\s+`)

	carbonWords  = []string{"carbon tax", "carbon price", "co2 tax", "emission tax", "emissions tax"}
	transitWords = []string{"public transport", "transit", "bus", "metro", "rail"}
	waterWords   = []string{"water price", "water tariff", "water pricing", "water cost"}
)

// KeywordInterpreter recognises levers by keyword and reads the first number in
// the same clause. It needs no network and backs the assistant when the model
// is unavailable.
type KeywordInterpreter struct{}

func (KeywordInterpreter) Interpret(_ context.Context, question string) (*PolicyBundle, error) {
	b := &PolicyBundle{Summary: strings.TrimSpace(question)}

	for _, clause := range clauseSplit.Split(strings.ToLower(question), -1) {
		switch {
		case containsAny(clause, carbonWords):
			b.CarbonTax = fraction(clause, defaultCarbonTax)
		case containsAny(clause, transitWords) && strings.Contains(clause, "subsid"):
			b.PublicTransportSubsidy = fraction(clause, defaultSubsidy)
		case containsAny(clause, waterWords):
			b.WaterPriceFactor = factor(clause, defaultWaterPrice)
		}
	}
	return b, nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// fraction reads "30%", "30 percent" or "0.3"; a percentage or any number
// above 1 is scaled down to [0,1].
func fraction(clause string, def float64) float64 {
	v, unit, ok := firstNumber(clause)
	if !ok {
		return def
	}
	if unit == "%" || unit == "percent" || v > 1 {
		v /= 100
	}
	if v > 1 {
		v = 1
	}
	return v
}

// factor reads "2x", "double" or "50%" (meaning +50%) as a tariff multiplier.
func factor(clause string, def float64) float64 {
	switch {
	case strings.Contains(clause, "double"):
		return 2
	case strings.Contains(clause, "triple"):
		return 3
	case strings.Contains(clause, "halve"), strings.Contains(clause, "half"):
		return 0.5
	}
	v, unit, ok := firstNumber(clause)
	if !ok {
		return def
	}
	if unit == "%" || unit == "percent" {
		return 1 + v/100
	}
	return v
}

func firstNumber(s string) (float64, string, bool) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return v, m[2], true
}
