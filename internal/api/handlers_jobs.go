package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type JobHandler struct {
	svc *services.JobService
}

func NewJobHandler(svc *services.JobService) *JobHandler { return &JobHandler{svc: svc} }

type jobAccepted struct {
	JobID string `json:"jobId"`
}

func (h *JobHandler) Export(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Format string `json:"format"`
	}
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	j, err := h.svc.RequestExport(r.Context(), actorID(r), in.Format)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, jobAccepted{JobID: j.ID})
}

func (h *JobHandler) DeleteData(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.RequestDelete(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, jobAccepted{JobID: j.ID})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Get(r.Context(), actorID(r), mux.Vars(r)["jobId"])
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, j)
}
