package api

import (
	"net/http"

	"github.com/KirkDiggler/tabletop-engine/internal/dice"
)

// RollRequest asks for one expression to be rolled
type RollRequest struct {
	Expression string `json:"expression"`
}

// RollResponse is the roll audit trail plus the d20 flags
type RollResponse struct {
	*dice.RollResult
	Critical bool   `json:"critical"`
	Fumble   bool   `json:"fumble"`
	Text     string `json:"text"`
}

func (h *Handler) roll(w http.ResponseWriter, r *http.Request) {
	var req RollRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := dice.RollString(req.Expression, h.source)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &RollResponse{
		RollResult: result,
		Critical:   result.IsCritical(),
		Fumble:     result.IsFumble(),
		Text:       result.String(),
	})
}
