package dice

import (
	"strings"

	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// RollMode says whether a single-die check is rolled once or twice
type RollMode string

const (
	RollNormal       RollMode = ""
	RollAdvantage    RollMode = "advantage"
	RollDisadvantage RollMode = "disadvantage"
)

// ParseRollMode recognises "advantage" and "disadvantage", ignoring case
func ParseRollMode(s string) (RollMode, bool) {
	switch mode := RollMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case RollAdvantage, RollDisadvantage:
		return mode, true
	default:
		return RollNormal, false
	}
}

// RollWithMode rolls expr through a Roller. Advantage and disadvantage only
// apply to a single die.
func RollWithMode(expr Expression, mode RollMode, src Source) (*RollResult, error) {
	if src == nil {
		return nil, dnderr.InvalidArgument("dice source is required")
	}
	if mode != RollNormal && expr.Count != 1 {
		return nil, dnderr.MalformedExpressionf("%s needs a single die, got %s", mode, expr)
	}

	roller := NewRoller(src)
	switch mode {
	case RollNormal:
		return roller.Roll(expr.Count, expr.Sides, expr.Modifier)
	case RollAdvantage:
		return roller.RollWithAdvantage(expr.Sides, expr.Modifier)
	case RollDisadvantage:
		return roller.RollWithDisadvantage(expr.Sides, expr.Modifier)
	default:
		return nil, dnderr.InvalidArgumentf("unknown roll mode %q", mode)
	}
}

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// RollWithAdvantage rolls with advantage (roll twice, take higher)
	RollWithAdvantage(sides, bonus int) (*RollResult, error)

	// RollWithDisadvantage rolls with disadvantage (roll twice, take lower)
	RollWithDisadvantage(sides, bonus int) (*RollResult, error)
}

type sourceRoller struct {
	src Source
}

// NewRoller creates a Roller drawing from src
func NewRoller(src Source) Roller {
	if src == nil {
		panic("dice source is required")
	}
	return &sourceRoller{src: src}
}

// Roll implements Roller.Roll
func (r *sourceRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	return Roll(Expression{Count: count, Sides: sides, Modifier: bonus}, r.src)
}

// RollWithAdvantage implements Roller.RollWithAdvantage
func (r *sourceRoller) RollWithAdvantage(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, func(a, b int) bool { return a >= b })
}

// RollWithDisadvantage implements Roller.RollWithDisadvantage
func (r *sourceRoller) RollWithDisadvantage(sides, bonus int) (*RollResult, error) {
	return r.rollTwice(sides, bonus, func(a, b int) bool { return a <= b })
}

// rollTwice keeps the first roll when keepFirst(first, second) holds
func (r *sourceRoller) rollTwice(sides, bonus int, keepFirst func(a, b int) bool) (*RollResult, error) {
	expr := Expression{Count: 1, Sides: sides, Modifier: bonus}
	if err := expr.Validate(); err != nil {
		return nil, err
	}

	first, err := draw(r.src, sides)
	if err != nil {
		return nil, err
	}
	second, err := draw(r.src, sides)
	if err != nil {
		return nil, err
	}

	kept, dropped := second, first
	if keepFirst(first, second) {
		kept, dropped = first, second
	}

	return &RollResult{
		Expression: expr,
		Rolls:      []int{kept},
		Discarded:  []int{dropped},
		Modifier:   bonus,
		Total:      kept + bonus,
	}, nil
}
