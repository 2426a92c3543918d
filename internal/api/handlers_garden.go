package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type GardenHandler struct {
	svc *services.GardenService
}

func NewGardenHandler(svc *services.GardenService) *GardenHandler { return &GardenHandler{svc: svc} }

func (h *GardenHandler) Mine(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Snapshot(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *GardenHandler) GetPlant(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GetPlant(r.Context(), actorID(r), mux.Vars(r)["plantId"])
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *GardenHandler) Care(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	if in.Action == "" {
		respond.WriteBadRequest(w, "action is required")
		return
	}
	out, err := h.svc.Care(r.Context(), actorID(r), mux.Vars(r)["plantId"], in.Action)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
