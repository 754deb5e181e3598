package handlers

import (
	"errors"
	"net/http"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/handlers/render"
	"github.com/phamtheduy/portfolio/internal/logger"
)

func handleLogin(authSvc authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required,min=3,max=100"`
		Password string `json:"password" validate:"required,min=6"`
	}
	type userResponse struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	type response struct {
		AccessToken  string       `json:"accessToken"`
		RefreshToken string       `json:"refreshToken"`
		User         userResponse `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		result, err := authSvc.Login(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.Error(w, render.CodeInvalidCredentials, "Invalid username or password", http.StatusUnauthorized)
			case errors.Is(err, apperrors.ErrAccountDisabled):
				render.Error(w, render.CodeAccountDisabled, "Account is disabled", http.StatusForbidden)
			default:
				serviceError(w, l, err)
			}
			return
		}

		render.Success(w, response{
			AccessToken:  result.Pair.Access.Value,
			RefreshToken: result.Pair.Refresh.Value,
			User:         userResponse{ID: result.User.ID, Username: result.User.Username},
		})
	})
}

func handleLogout(authSvc authService, l logger.Logger) http.Handler {
	type request struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		if err := authSvc.Logout(r.Context(), data.RefreshToken); err != nil {
			serviceError(w, l, err)
			return
		}

		render.Success(w, nil)
	})
}
