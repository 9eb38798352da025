package handler

import (
	"net/http"

	"github.com/freelancehub/freelancehub/internal/ctxkeys"
	"github.com/freelancehub/freelancehub/internal/handler/httpjson"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	cfg := ctxkeys.Config(r.Context())

	name := "FreelanceHub"
	if cfg != nil {
		name = cfg.AppName
	}
	httpjson.Write(w, http.StatusOK, map[string]string{
		"name":   name,
		"status": "ok",
	})
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	httpjson.Error(w, http.StatusNotFound, "not found")
}
