package transform

import (
	"errors"
	"fmt"

	"github.com/insightdelivered/statement-transformer/internal/models"
)

// Rule defines the interface for bank-specific statement transformations.
type Rule interface {
	// Apply maps a raw sheet to a normalized ETIQUETA, FECHA, REFERENCIA,
	// IMPORTE sheet. It never modifies its argument.
	Apply(sheet models.Sheet) models.Sheet
	// ID returns the identifier the rule is selected by.
	ID() models.RuleID
	// BankName returns the human-readable institution name.
	BankName() string
}

var (
	// ErrUnknownRule is returned for identifiers that match no rule.
	ErrUnknownRule = errors.New("unknown transformation rule")
	// ErrEmptySheet is returned when there is no loaded data to transform.
	ErrEmptySheet = errors.New("no data to transform: load a file first")
)

// New returns the rule for the given identifier.
func New(id models.RuleID) (Rule, error) {
	switch id {
	case models.RuleExteriorJuridico:
		return &ExteriorJuridicoRule{}, nil
	case models.RuleExteriorPersonales:
		return &ExteriorPersonalesRule{}, nil
	case models.RuleVenezuela:
		return &VenezuelaRule{}, nil
	case models.RuleBancaribe:
		return &BancaribeRule{}, nil
	case models.RuleBanesco:
		return &BanescoRule{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, id)
	}
}

// All returns every rule in identifier order.
func All() []Rule {
	rules := make([]Rule, 0, len(models.RuleIDs))
	for _, id := range models.RuleIDs {
		r, _ := New(id)
		rules = append(rules, r)
	}
	return rules
}

// Apply runs the rule selected by id on a deep copy of sheet, so the
// caller's sheet can be transformed again under another rule.
// Unknown identifiers and empty sheets are rejected before any rule runs.
func Apply(id models.RuleID, sheet models.Sheet) (out models.Sheet, err error) {
	rule, err := New(id)
	if err != nil {
		return nil, err
	}
	if len(sheet) == 0 {
		return nil, ErrEmptySheet
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = fmt.Errorf("rule %s (%s) failed: %v", id, rule.BankName(), rec)
		}
	}()

	return rule.Apply(sheet.Clone()), nil
}
