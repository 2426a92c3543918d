package api

import (
	"net/http"

	"github.com/DavideLicci/MindGarden/internal/api/respond"
	"github.com/DavideLicci/MindGarden/internal/api/validate"
	"github.com/DavideLicci/MindGarden/internal/services"
)

type AuthHandler struct {
	svc *services.UserService
}

func NewAuthHandler(svc *services.UserService) *AuthHandler { return &AuthHandler{svc: svc} }

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	if err := validate.Email(in.Email); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Password(in.Password); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	token, _, err := h.svc.Register(r.Context(), in.Email, in.Password)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(w, r, &in, false); err != nil {
		badJSON(w, err)
		return
	}
	if in.Email == "" || in.Password == "" {
		respond.WriteBadRequest(w, "email and password are required")
		return
	}
	token, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
