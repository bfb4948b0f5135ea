package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/character"
	"github.com/KirkDiggler/tabletop-engine/internal/narration"
	"github.com/KirkDiggler/tabletop-engine/internal/services/progression"
)

// CreateCharacterRequest describes a new character. A zero hit die uses the class default.
type CreateCharacterRequest struct {
	Name       string                  `json:"name"`
	ClassKey   string                  `json:"class_key"`
	HitDie     int                     `json:"hit_die,omitempty"`
	Level      int                     `json:"level,omitempty"`
	Experience int                     `json:"experience,omitempty"`
	Abilities  character.AbilityScores `json:"abilities"`
}

// ExperienceRequest is the body of an experience award
type ExperienceRequest struct {
	Amount int `json:"amount"`
}

// ExperienceResponse is the saved character, any level up and its announcement
type ExperienceResponse struct {
	*progression.Result
	Announcement string `json:"announcement,omitempty"`
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req CreateCharacterRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	char, err := h.characterService.CreateCharacter(r.Context(), &character.NewInput{
		Name:       req.Name,
		ClassKey:   req.ClassKey,
		HitDie:     req.HitDie,
		Level:      req.Level,
		Experience: req.Experience,
		Abilities:  req.Abilities,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, char)
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	char, err := h.characterService.GetCharacter(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, char)
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	chars, err := h.characterService.ListCharacters(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if chars == nil {
		chars = []*character.Character{}
	}

	writeJSON(w, http.StatusOK, chars)
}

func (h *Handler) awardExperience(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.characterService.AwardExperience(r.Context(), mux.Vars(r)["id"], req.Amount)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := &ExperienceResponse{Result: result}
	if result.LevelUp != nil {
		resp.Announcement = narration.LevelUpLine(result.Character.Name, result.LevelUp)
	}
	writeJSON(w, http.StatusOK, resp)
}
