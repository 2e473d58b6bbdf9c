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

// GetProjectsHandler lists all projects.
func (h *APIHandler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.ListProjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]model.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, model.NewProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetProjectHandler returns a single project by ID.
func (h *APIHandler) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseObjectID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewProjectResponse(*project))
}

// CreateProjectHandler creates one project.
func (h *APIHandler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}
	if project.Name == "" {
		writeError(w, apperr.New(apperr.InvalidInput, "missing 'name'"))
		return
	}

	id, err := h.projectRepo.CreateProject(r.Context(), &project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id, "message": "Project created successfully"})
}

// CreateProjectsHandler bulk-inserts projects.
func (h *APIHandler) CreateProjectsHandler(w http.ResponseWriter, r *http.Request) {
	var projects []model.Project
	if err := json.NewDecoder(r.Body).Decode(&projects); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}
	if len(projects) == 0 {
		writeError(w, apperr.New(apperr.InvalidInput, "no projects provided"))
		return
	}

	ids, err := h.projectRepo.CreateProjects(r.Context(), projects)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":        fmt.Sprintf("Added %d projects", len(ids)),
		"inserted_count": len(ids),
	})
}

// UpdateProjectHandler replaces a project's fields.
func (h *APIHandler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseObjectID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidInput, "invalid request body", err))
		return
	}

	if err := h.projectRepo.UpdateProject(r.Context(), id, &project); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project updated successfully"})
}

// DeleteProjectHandler removes a project.
func (h *APIHandler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseObjectID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.projectRepo.DeleteProject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
