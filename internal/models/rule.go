package models

import (
	"fmt"
	"strings"
)

// RuleID identifies one of the bank-specific transformation rules.
type RuleID string

const (
	RuleExteriorJuridico   RuleID = "1"
	RuleExteriorPersonales RuleID = "2"
	RuleVenezuela          RuleID = "3"
	RuleBancaribe          RuleID = "4"
	RuleBanesco            RuleID = "5"
)

// RuleIDs lists every rule identifier in order.
var RuleIDs = []RuleID{
	RuleExteriorJuridico,
	RuleExteriorPersonales,
	RuleVenezuela,
	RuleBancaribe,
	RuleBanesco,
}

var ruleAliases = map[string]RuleID{
	"exterior-juridico":   RuleExteriorJuridico,
	"juridico":            RuleExteriorJuridico,
	"exterior-personales": RuleExteriorPersonales,
	"personales":          RuleExteriorPersonales,
	"venezuela":           RuleVenezuela,
	"bancaribe":           RuleBancaribe,
	"banesco":             RuleBanesco,
}

// Alias returns the preferred textual alias of the rule.
func (id RuleID) Alias() string {
	switch id {
	case RuleExteriorJuridico:
		return "exterior-juridico"
	case RuleExteriorPersonales:
		return "exterior-personales"
	case RuleVenezuela:
		return "venezuela"
	case RuleBancaribe:
		return "bancaribe"
	case RuleBanesco:
		return "banesco"
	}
	return ""
}

// Valid reports whether id names a known rule.
func (id RuleID) Valid() bool {
	return id.Alias() != ""
}

// ParseRuleID accepts a rule digit ("1".."5") or an institution alias.
func ParseRuleID(s string) (RuleID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if id := RuleID(key); id.Valid() {
		return id, nil
	}
	if id, ok := ruleAliases[key]; ok {
		return id, nil
	}
	return "", fmt.Errorf("unknown rule %q. Supported: 1-5, exterior-juridico, exterior-personales, venezuela, bancaribe, banesco", s)
}
