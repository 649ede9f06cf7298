package retention

import "fmt"

// Rule names one retention tier.
type Rule string

const (
	RuleLast    Rule = "keep-last"
	RuleHourly  Rule = "keep-hourly"
	RuleDaily   Rule = "keep-daily"
	RuleWeekly  Rule = "keep-weekly"
	RuleMonthly Rule = "keep-monthly"
	RuleYearly  Rule = "keep-yearly"

	// RuleAll is assigned to every complete record when the policy keeps
	// no tier at all.
	RuleAll Rule = "keep-all"

	// RulePartial keeps the newest incomplete backup while no complete
	// backup is newer than it.
	RulePartial Rule = "keep-partial"
)

var ruleOrder = []Rule{RuleLast, RuleHourly, RuleDaily, RuleWeekly, RuleMonthly, RuleYearly}

// Rules returns the six tiers in the order they are applied.
func Rules() []Rule {
	return append([]Rule(nil), ruleOrder...)
}

// Policy bounds how many buckets each tier may keep. Zero disables a tier.
type Policy struct {
	KeepLast    int `json:"keep-last,omitempty" yaml:"keep-last,omitempty" validate:"gte=0"`
	KeepHourly  int `json:"keep-hourly,omitempty" yaml:"keep-hourly,omitempty" validate:"gte=0"`
	KeepDaily   int `json:"keep-daily,omitempty" yaml:"keep-daily,omitempty" validate:"gte=0"`
	KeepWeekly  int `json:"keep-weekly,omitempty" yaml:"keep-weekly,omitempty" validate:"gte=0"`
	KeepMonthly int `json:"keep-monthly,omitempty" yaml:"keep-monthly,omitempty" validate:"gte=0"`
	KeepYearly  int `json:"keep-yearly,omitempty" yaml:"keep-yearly,omitempty" validate:"gte=0"`
}

// Count returns the configured count for rule, or 0 for unknown rules.
func (p Policy) Count(rule Rule) int {
	switch rule {
	case RuleLast:
		return p.KeepLast
	case RuleHourly:
		return p.KeepHourly
	case RuleDaily:
		return p.KeepDaily
	case RuleWeekly:
		return p.KeepWeekly
	case RuleMonthly:
		return p.KeepMonthly
	case RuleYearly:
		return p.KeepYearly
	}
	return 0
}

// IsZero reports whether no tier is enabled.
func (p Policy) IsZero() bool {
	for _, rule := range ruleOrder {
		if p.Count(rule) > 0 {
			return false
		}
	}
	return true
}

// Validate rejects negative counts.
func (p Policy) Validate() error {
	for _, rule := range ruleOrder {
		if n := p.Count(rule); n < 0 {
			return &InvalidPolicyError{Rule: rule, Value: n}
		}
	}
	return nil
}

func (p Policy) String() string {
	s := ""
	for _, rule := range ruleOrder {
		if n := p.Count(rule); n > 0 {
			if s != "" {
				s += " "
			}
			s += fmt.Sprintf("%s=%d", rule, n)
		}
	}
	if s == "" {
		return string(RuleAll)
	}
	return s
}
