package api

import (
	"net/http"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type SettingsHandler struct {
	svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var in model.SettingsPatch
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	out, err := h.svc.Patch(r.Context(), actorID(r), in)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
