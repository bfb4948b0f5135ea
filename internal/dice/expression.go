package dice

import (
	"fmt"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

const (
	// MaxDice caps the number of dice a single expression may roll
	MaxDice = 1000

	// MaxSides caps the faces on one die
	MaxSides = 1000

	// MaxModifier caps the magnitude of the flat modifier. With MaxDice and MaxSides
	// every total fits comfortably in an int.
	MaxModifier = 1_000_000
)

// Expression is a parsed "NdM+K" dice expression
type Expression struct {
	Count    int `json:"count"`
	Sides    int `json:"sides"`
	Modifier int `json:"modifier"`
}

// String renders the canonical form, e.g. "3d6+2", "1d20", "1d8-1"
func (e Expression) String() string {
	switch {
	case e.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Sides, e.Modifier)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}

// Min is the lowest total the expression can produce
func (e Expression) Min() int {
	return e.Count + e.Modifier
}

// Max is the highest total the expression can produce
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Modifier
}

// IsZero reports whether the expression is the zero value (never produced by Parse)
func (e Expression) IsZero() bool {
	return e.Count == 0 && e.Sides == 0 && e.Modifier == 0
}

// Validate checks the invariants Parse guarantees, for expressions built by hand
func (e Expression) Validate() error {
	if e.Count < 1 {
		return dnderr.MalformedExpressionf("dice count must be at least 1, got %d", e.Count)
	}
	if e.Count > MaxDice {
		return dnderr.MalformedExpressionf("dice count must be at most %d, got %d", MaxDice, e.Count)
	}
	if e.Sides < 2 {
		return dnderr.MalformedExpressionf("dice must have at least 2 sides, got %d", e.Sides)
	}
	if e.Sides > MaxSides {
		return dnderr.MalformedExpressionf("dice must have at most %d sides, got %d", MaxSides, e.Sides)
	}
	if e.Modifier > MaxModifier || e.Modifier < -MaxModifier {
		return dnderr.MalformedExpressionf("modifier must be between -%d and %d, got %d", MaxModifier, MaxModifier, e.Modifier)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler so expressions travel as "1d8+3"
func (e Expression) MarshalText() ([]byte, error) {
	if e.IsZero() {
		return []byte{}, nil
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Expression) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*e = Expression{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Parse reads the canonical form {count}d{sides} with an optional +K or -K suffix.
// Surrounding whitespace is ignored and the "d" may be upper case.
func Parse(expression string) (Expression, error) {
	s := scanner{input: strings.TrimSpace(expression)}
	if s.input == "" {
		return Expression{}, malformed(expression, "expression is empty")
	}

	count, err := s.number("dice count")
	if err != nil {
		return Expression{}, malformed(expression, err.Error())
	}

	if !s.accept('d', 'D') {
		return Expression{}, malformed(expression, "missing 'd' separator")
	}

	sides, err := s.number("die sides")
	if err != nil {
		return Expression{}, malformed(expression, err.Error())
	}

	modifier := 0
	if !s.done() {
		sign := s.peek()
		if !s.accept('+', '-') {
			return Expression{}, malformed(expression, fmt.Sprintf("unexpected %q after die sides", sign))
		}
		modifier, err = s.number("modifier")
		if err != nil {
			return Expression{}, malformed(expression, err.Error())
		}
		if sign == '-' {
			modifier = -modifier
		}
	}

	if !s.done() {
		return Expression{}, malformed(expression, fmt.Sprintf("unexpected trailing input %q", s.rest()))
	}

	expr := Expression{Count: count, Sides: sides, Modifier: modifier}
	if err := expr.Validate(); err != nil {
		return Expression{}, dnderr.Wrapf(err, "invalid dice expression %q", expression)
	}

	return expr, nil
}

// MustParse parses expression and panics on error. Meant for package-level values.
func MustParse(expression string) Expression {
	expr, err := Parse(expression)
	if err != nil {
		panic(fmt.Sprintf("dice: MustParse(%q): %v", expression, err))
	}
	return expr
}

func malformed(expression, reason string) error {
	return dnderr.MalformedExpressionf("invalid dice expression %q: %s", expression, reason).
		WithMeta("expression", expression)
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) rest() string {
	return s.input[s.pos:]
}

func (s *scanner) accept(options ...byte) bool {
	if s.done() {
		return false
	}
	for _, o := range options {
		if s.input[s.pos] == o {
			s.pos++
			return true
		}
	}
	return false
}

// number consumes a run of decimal digits
func (s *scanner) number(what string) (int, error) {
	start := s.pos
	for !s.done() && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if start == s.pos {
		if s.done() {
			return 0, fmt.Errorf("missing %s", what)
		}
		return 0, fmt.Errorf("%s must be numeric, found %q", what, s.input[s.pos])
	}

	value, err := strconv.Atoi(s.input[start:s.pos])
	if err != nil {
		return 0, fmt.Errorf("%s %q is out of range", what, s.input[start:s.pos])
	}
	return value, nil
}
