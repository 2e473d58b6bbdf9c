package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"PortfolioFM/apperr"
	"PortfolioFM/model"
	"PortfolioFM/repository"

	"github.com/gorilla/mux"
)

// GetExperiencesHandler lists experiences, most recent end period first.
func (h *APIHandler) GetExperiencesHandler(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.experienceRepo.ListExperiences(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]model.ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		responses = append(responses, model.NewExperienceResponse(e))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetExperienceHandler returns a single experience by ID.
func (h *APIHandler) GetExperienceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseObjectID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	experience, err := h.experienceRepo.GetExperience(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewExperienceResponse(*experience))
}

// CreateExperienceHandler creates one experience.
func (h *APIHandler) CreateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	var experience model.Experience
	if err := json.NewDecoder(r.Body).Decode(&experience); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}
	if experience.Title == "" {
		writeError(w, apperr.New(apperr.InvalidInput, "missing 'title'"))
		return
	}

	id, err := h.experienceRepo.CreateExperience(r.Context(), &experience)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "message": "Experience created successfully"})
}

// CreateExperiencesHandler bulk-inserts experiences.
func (h *APIHandler) CreateExperiencesHandler(w http.ResponseWriter, r *http.Request) {
	var experiences []model.Experience
	if err := json.NewDecoder(r.Body).Decode(&experiences); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}
	if len(experiences) == 0 {
		writeError(w, apperr.New(apperr.InvalidInput, "no experiences provided"))
		return
	}

	ids, err := h.experienceRepo.CreateExperiences(r.Context(), experiences)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        fmt.Sprintf("Added %d experiences", len(ids)),
		"inserted_count": len(ids),
	})
}

// UpdateExperienceHandler replaces an experience's fields.
func (h *APIHandler) UpdateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseObjectID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	var experience model.Experience
	if err := json.NewDecoder(r.Body).Decode(&experience); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}

	if err := h.experienceRepo.UpdateExperience(r.Context(), id, &experience); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Experience updated successfully"})
}

// DeleteExperienceHandler removes an experience.
func (h *APIHandler) DeleteExperienceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseObjectID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.experienceRepo.DeleteExperience(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Experience deleted successfully"})
}
