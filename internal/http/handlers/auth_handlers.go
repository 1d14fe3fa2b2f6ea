package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
)

// RegisterHandler godoc
// @Summary Register a new user
// @Description Creates the account and returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "New user"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse "Invalid input or email already registered"
// @Router /auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := authService.Register(r.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTokenResponse(session, authService.JWT().TTL()))
}

// LoginHandler godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "Email and password"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Incorrect email or password"
// @Router /auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req UserLogin
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := authService.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindAuth {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTokenResponse(session, authService.JWT().TTL()))
}

// RefreshHandler godoc
// @Summary Rotate tokens
// @Description Exchanges a refresh token for a new pair. A refresh token can be used once.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTokenResponse(session, authService.JWT().TTL()))
}

// MeHandler godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func MeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := authService.CurrentUser(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
