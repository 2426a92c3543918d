package api

import (
	"net/http"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/uploads"
)

type UploadHandler struct {
	signer *uploads.Signer
}

func NewUploadHandler(s *uploads.Signer) *UploadHandler { return &UploadHandler{signer: s} }

func (h *UploadHandler) SignedURL(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID        *int64 `json:"userId,omitempty"`
		ContentType   string `json:"contentType"`
		LengthSeconds int    `json:"lengthSeconds"`
	}
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	userID := actorID(r)
	if in.UserID != nil && *in.UserID != userID {
		respond.WriteError(w, http.StatusForbidden, "Access denied")
		return
	}
	out, err := h.signer.Sign(userID, in.ContentType, in.LengthSeconds)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
