package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
	"github.com/freelancehub/freelancehub/internal/repository"
	"github.com/freelancehub/freelancehub/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	projects, err := h.projectService.Projects(profile.CompanyID)
	if err != nil {
		slog.Error("failed to list projects", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load projects")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	project, err := h.projectService.ByID(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrProjectNotFound) {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		slog.Error("failed to load project", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load project")
		return
	}

	httpjson.Write(w, http.StatusOK, project)
}

func (h *ProjectHandler) Save(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	var input service.ProjectInput
	if err := httpjson.Decode(r, &input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.projectService.Save(profile.CompanyID, input)
	switch {
	case errors.Is(err, service.ErrProjectInvalid):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrClientNotFound):
		httpjson.Error(w, http.StatusBadRequest, "linked client not found")
		return
	case errors.Is(err, repository.ErrProjectNotFound):
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	case err != nil:
		slog.Error("failed to save project", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save project")
		return
	}

	status := http.StatusOK
	if input.ID == "" {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, project)
}

func (h *ProjectHandler) Archive(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	project, err := h.projectService.Archive(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrProjectNotFound) {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		slog.Error("failed to archive project", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to archive project")
		return
	}

	httpjson.Write(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())

	err := h.projectService.Delete(profile.CompanyID, r.PathValue("id"))
	if errors.Is(err, repository.ErrProjectNotFound) {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete project", "error", err, "company_id", profile.CompanyID)
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]bool{"deleted": true})
}
