package api

import (
	"errors"
	"net/http"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler { return &ChatHandler{svc: svc} }

func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message             string        `json:"message"`
		ConversationHistory []llm.Message `json:"conversationHistory"`
	}
	if err := decodeJSON(w, r, &in, false); err != nil {
		respond.WriteErrorCode(w, http.StatusBadRequest, services.ErrCodeInvalidMessage, "Message is required and must be a string")
		return
	}
	out, err := h.svc.Converse(r.Context(), actorID(r), in.Message, in.ConversationHistory)
	if err != nil {
		var inErr *services.ChatInputError
		if errors.As(err, &inErr) {
			respond.WriteErrorCode(w, http.StatusBadRequest, inErr.Code, inErr.Message)
			return
		}
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ChatHandler) Context(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Context(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ChatHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Suggestions(r.Context(), actorID(r))
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
