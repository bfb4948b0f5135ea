package dice

import (
	"strings"

	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

const actionTagPrefix = "[DICE_ROLL:"

// ActionTag is a roll request embedded in narrator text as [DICE_ROLL:d20+3:Description],
// optionally ending in :advantage or :disadvantage
type ActionTag struct {
	Raw         string     `json:"raw"`
	Expression  Expression `json:"expression"`
	Description string     `json:"description"`
	Mode        RollMode   `json:"mode,omitempty"`
}

// ParseActionTags extracts every roll tag from text, in order of appearance.
// Inside a tag an omitted count means one die ("d20+3" is "1d20+3").
func ParseActionTags(text string) ([]ActionTag, error) {
	var tags []ActionTag

	rest := text
	for {
		start := strings.Index(rest, actionTagPrefix)
		if start < 0 {
			return tags, nil
		}

		body := rest[start+len(actionTagPrefix):]
		end := strings.IndexByte(body, ']')
		if end < 0 {
			return nil, dnderr.MalformedExpressionf("unterminated roll tag %q", rest[start:])
		}

		notation, description, _ := strings.Cut(body[:end], ":")
		notation = strings.TrimSpace(notation)
		if strings.HasPrefix(notation, "d") || strings.HasPrefix(notation, "D") {
			notation = "1" + notation
		}

		raw := rest[start : start+len(actionTagPrefix)+end+1]
		expr, err := Parse(notation)
		if err != nil {
			return nil, dnderr.Wrapf(err, "invalid roll tag %q", raw)
		}

		head, last := "", description
		if i := strings.LastIndex(description, ":"); i >= 0 {
			head, last = description[:i], description[i+1:]
		}
		mode, hasMode := ParseRollMode(last)
		if hasMode {
			if expr.Count != 1 {
				return nil, dnderr.MalformedExpressionf("%s needs a single die in roll tag %q", mode, raw)
			}
			description = head
		}

		tags = append(tags, ActionTag{
			Raw:         raw,
			Expression:  expr,
			Description: strings.TrimSpace(description),
			Mode:        mode,
		})
		rest = body[end+1:]
	}
}

// StripActionTags removes roll tags from narration, leaving the prose
func StripActionTags(text string) string {
	var b strings.Builder

	rest := text
	for {
		start := strings.Index(rest, actionTagPrefix)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])

		end := strings.IndexByte(rest[start:], ']')
		if end < 0 {
			break
		}
		rest = rest[start+end+1:]
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
