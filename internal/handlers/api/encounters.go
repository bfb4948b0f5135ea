package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
	"github.com/KirkDiggler/tabletop-engine/internal/narration"
	"github.com/KirkDiggler/tabletop-engine/internal/services/encounter"
)

// ActionRequest is the body of an action submission
type ActionRequest struct {
	ActorID  string `json:"actor_id"`
	ActionID string `json:"action_id"`
	TargetID string `json:"target_id"`
}

// NarrationRequest carries narrator text with roll tags
type NarrationRequest struct {
	ActorID string `json:"actor_id"`
	Text    string `json:"text"`
}

// ChoiceRequest carries the custom ID of a pressed encounter button
type ChoiceRequest struct {
	CustomID string `json:"custom_id"`
}

// ActionResponse is the stored session, the new log entry and its rendered line
type ActionResponse struct {
	Session *combat.Session  `json:"session"`
	Entry   *combat.LogEntry `json:"entry"`
	Line    string           `json:"line"`
}

// NarrationResponse holds the resolved rolls and the prose without tags
type NarrationResponse struct {
	Session   *combat.Session    `json:"session"`
	Entries   []*combat.LogEntry `json:"entries"`
	Lines     []string           `json:"lines"`
	Narration string             `json:"narration"`
}

func (h *Handler) startEncounter(w http.ResponseWriter, r *http.Request) {
	var input encounter.StartEncounterInput
	if err := decode(r, &input); err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.encounterService.StartEncounter(r.Context(), &input)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) getEncounter(w http.ResponseWriter, r *http.Request) {
	session, err := h.encounterService.GetEncounter(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) submitAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	outcome, err := h.encounterService.SubmitAction(r.Context(), &encounter.SubmitActionInput{
		EncounterID: mux.Vars(r)["id"],
		ActorID:     req.ActorID,
		ActionID:    req.ActionID,
		TargetID:    req.TargetID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse(outcome))
}

func (h *Handler) flee(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.encounterService.Flee(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse(outcome))
}

func (h *Handler) submitChoice(w http.ResponseWriter, r *http.Request) {
	var req ChoiceRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	encounterID := mux.Vars(r)["id"]
	choice, err := narration.ParseActionChoice(req.CustomID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if choice.EncounterID != encounterID {
		h.fail(w, r, dnderr.InvalidArgumentf("custom ID belongs to encounter %s", choice.EncounterID))
		return
	}

	session, err := h.encounterService.GetEncounter(r.Context(), encounterID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	selection, err := choice.Resolve(session)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var outcome *encounter.ActionOutcome
	if selection.Flee {
		outcome, err = h.encounterService.Flee(r.Context(), encounterID)
	} else {
		outcome, err = h.encounterService.SubmitAction(r.Context(), &encounter.SubmitActionInput{
			EncounterID: encounterID,
			ActorID:     selection.ActorID,
			ActionID:    selection.ActionID,
			TargetID:    selection.TargetID,
		})
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse(outcome))
}

func (h *Handler) rollNarration(w http.ResponseWriter, r *http.Request) {
	var req NarrationRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	outcome, err := h.encounterService.RollNarration(r.Context(), &encounter.RollNarrationInput{
		EncounterID: mux.Vars(r)["id"],
		ActorID:     req.ActorID,
		Text:        req.Text,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	lines := make([]string, len(outcome.Entries))
	for i, entry := range outcome.Entries {
		lines[i] = narration.Line(entry)
	}

	writeJSON(w, http.StatusOK, &NarrationResponse{
		Session:   outcome.Session,
		Entries:   outcome.Entries,
		Lines:     lines,
		Narration: outcome.Narration,
	})
}

func actionResponse(outcome *encounter.ActionOutcome) *ActionResponse {
	return &ActionResponse{
		Session: outcome.Session,
		Entry:   outcome.Entry,
		Line:    narration.Line(outcome.Entry),
	}
}
