// market/instruments.go
package market

import "strings"

// DefaultPointValue applies to any symbol no rule matches.
const DefaultPointValue = 1.0

// PointValueRule maps every symbol containing Match to a dollar value per
// point of price movement for one contract.
type PointValueRule struct {
	Match      string  `json:"match" yaml:"match"`
	PointValue float64 `json:"point_value" yaml:"point_value"`
}

// DefaultRules is the built-in futures table. E-mini NQ is $20 a point,
// micro NQ is $2 a point.
var DefaultRules = []PointValueRule{
	{Match: "ENQU25", PointValue: 20.0},
	{Match: "mNQU25", PointValue: 2.0},
	{Match: "MNQU25", PointValue: 2.0},
}

// PointValues is an ordered rule table; the first matching rule wins.
type PointValues struct {
	rules []PointValueRule
}

// NewPointValues builds a table where the given rules are tried before
// DefaultRules.
func NewPointValues(rules ...PointValueRule) *PointValues {
	all := make([]PointValueRule, 0, len(rules)+len(DefaultRules))
	all = append(all, rules...)
	all = append(all, DefaultRules...)
	return &PointValues{rules: all}
}

// DefaultPointValues returns a table holding only DefaultRules.
func DefaultPointValues() *PointValues {
	return NewPointValues()
}

// Of returns the point value for symbol.
func (p *PointValues) Of(symbol string) float64 {
	for _, r := range p.rules {
		if r.Match != "" && strings.Contains(symbol, r.Match) {
			return r.PointValue
		}
	}
	return DefaultPointValue
}

// Rules returns a copy of the table in lookup order.
func (p *PointValues) Rules() []PointValueRule {
	out := make([]PointValueRule, len(p.rules))
	copy(out, p.rules)
	return out
}

// PointValueOf looks symbol up in the default table.
func PointValueOf(symbol string) float64 {
	return defaultTable.Of(symbol)
}

var defaultTable = DefaultPointValues()
