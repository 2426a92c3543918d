package api

import (
	"net/http"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type InsightHandler struct {
	svc *services.InsightService
}

func NewInsightHandler(svc *services.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", services.DefaultInsightLimit)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.List(r.Context(), actorID(r), limit)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CheckInIDs []int64 `json:"checkinIds"`
	}
	if err := decodeJSON(w, r, &in, true); err != nil {
		badJSON(w, err)
		return
	}
	out, err := h.svc.Generate(r.Context(), actorID(r), in.CheckInIDs)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, out)
}

type notificationsResponse struct {
	Notifications []insight.Notification `json:"notifications"`
	Count         int                    `json:"count"`
}

func (h *InsightHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Notifications(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, notificationsResponse{Notifications: out, Count: len(out)})
}
