package dice

import (
	"fmt"
	"strings"

	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// RollResult is the audit trail of one evaluated expression.
// Total is always sum(Rolls) + Modifier.
type RollResult struct {
	Expression Expression `json:"expression"`
	Rolls      []int      `json:"rolls"`
	Discarded  []int      `json:"discarded,omitempty"` // dice dropped by advantage/disadvantage
	Modifier   int        `json:"modifier"`
	Total      int        `json:"total"`
}

// Natural returns the raw face of the first kept die
func (r *RollResult) Natural() int {
	if r == nil || len(r.Rolls) == 0 {
		return 0
	}
	return r.Rolls[0]
}

func (r *RollResult) isSingleD20() bool {
	return r != nil && len(r.Rolls) == 1 && r.Expression.Sides == 20
}

// IsCritical reports a natural 20 on a single d20
func (r *RollResult) IsCritical() bool {
	return r.isSingleD20() && r.Rolls[0] == r.Expression.Sides
}

// IsFumble reports a natural 1 on a single d20
func (r *RollResult) IsFumble() bool {
	return r.isSingleD20() && r.Rolls[0] == 1
}

// String renders "1d8+3 [6] = 9", or "1d20+2 [15] (dropped 4) = 17" when a die was discarded
func (r *RollResult) String() string {
	if r == nil {
		return ""
	}
	if len(r.Discarded) > 0 {
		return fmt.Sprintf("%s [%s] (dropped %s) = %d", r.Expression, joinFaces(r.Rolls), joinFaces(r.Discarded), r.Total)
	}
	return fmt.Sprintf("%s [%s] = %d", r.Expression, joinFaces(r.Rolls), r.Total)
}

func joinFaces(faces []int) string {
	out := make([]string, len(faces))
	for i, face := range faces {
		out[i] = fmt.Sprintf("%d", face)
	}
	return strings.Join(out, ",")
}

// Roll draws expr.Count dice from src and adds the modifier
func Roll(expr Expression, src Source) (*RollResult, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, dnderr.InvalidArgument("dice source is required")
	}

	rolls := make([]int, expr.Count)
	total := expr.Modifier
	for i := range rolls {
		face, err := draw(src, expr.Sides)
		if err != nil {
			return nil, err
		}
		rolls[i] = face
		total += face
	}

	return &RollResult{
		Expression: expr,
		Rolls:      rolls,
		Modifier:   expr.Modifier,
		Total:      total,
	}, nil
}

// RollString parses and rolls in one call
func RollString(expression string, src Source) (*RollResult, error) {
	expr, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return Roll(expr, src)
}

func draw(src Source, sides int) (int, error) {
	face, err := src.Roll(sides)
	if err != nil {
		return 0, dnderr.Wrapf(err, "failed to roll d%d", sides)
	}
	if face < 1 || face > sides {
		return 0, dnderr.Internalf("source returned %d for d%d", face, sides)
	}
	return face, nil
}
