package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type CheckInHandler struct {
	svc *services.CheckInService
}

func NewCheckInHandler(svc *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{svc: svc}
}

func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCheckInRequest
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	out, err := h.svc.Create(r.Context(), actorID(r), in)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *CheckInHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil || limit < 0 {
		respond.WriteBadRequest(w, "limit must be a non-negative integer")
		return
	}
	out, err := h.svc.List(r.Context(), actorID(r), limit)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *CheckInHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := checkInID(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Get(r.Context(), actorID(r), id)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *CheckInHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := checkInID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), actorID(r), id); err != nil {
		respond.FromError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func checkInID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["checkinId"], 10, 64)
	if err != nil || id <= 0 {
		respond.WriteBadRequest(w, "invalid checkin id")
		return 0, false
	}
	return id, true
}
