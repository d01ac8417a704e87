package handler

import (
	"errors"
	"net"
	"net/http"

	userdomain "qd-calendar-go/internal/domain/user"
	"qd-calendar-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=80"`
	Password string  `json:"password" validate:"required,min=6,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type userResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Email    *string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	account, err := h.Users.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username_taken", "username already exists")
		case errors.Is(err, userdomain.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email_taken", "email already exists")
		default:
			h.log.InternalError("auth.register: create user failed", err, "username", req.Username)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(account))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	account, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "username", req.Username)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
			return
		}
		h.log.InternalError("auth.login: authenticate failed", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.writeTokens(w, account)
}

func (h *Handlers) GuestLogin(w http.ResponseWriter, r *http.Request) {
	addr := r.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	account, err := h.Users.GuestLogin(r.Context(), addr)
	if err != nil {
		h.log.InternalError("auth.guest: login failed", err, "addr", addr)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.writeTokens(w, account)
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	userID, err := h.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	account, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("auth.refresh: get user failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.writeTokens(w, account)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	account, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("auth.profile: get user failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(account))
}

func (h *Handlers) writeTokens(w http.ResponseWriter, account *userdomain.User) {
	access, err := h.tokens.GenerateAccess(account.ID)
	if err != nil {
		h.log.InternalError("auth: generate access token failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	refresh, err := h.tokens.GenerateRefresh(account.ID)
	if err != nil {
		h.log.InternalError("auth: generate refresh token failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(account),
	})
}

func userIDOrUnauthorized(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return 0, false
	}
	return userID, true
}

func toUserResponse(account *userdomain.User) userResponse {
	return userResponse{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
		Email:    account.Email,
	}
}
