package api

import (
	"net/http"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) EmotionTrends(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", services.DefaultTrendDays)
	if err != nil || days <= 0 {
		respond.WriteBadRequest(w, "days must be a positive integer")
		return
	}
	out, err := h.svc.EmotionTrends(r.Context(), actorID(r), days)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *AnalyticsHandler) GardenHealth(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.GardenHealth(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *AnalyticsHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Achievements(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Report(r.Context(), actorID(r), r.URL.Query().Get("period"))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
