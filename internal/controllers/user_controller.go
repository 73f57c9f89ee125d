package controllers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type UserController struct {
	authService   *services.AuthService
	validate      *validator.Validate
	sessionTTL    time.Duration
	secureCookies bool
}

func NewUserController(authService *services.AuthService, sessionTTL time.Duration, secureCookies bool) *UserController {
	return &UserController{
		authService:   authService,
		validate:      newValidator(),
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

// POST /users/signup
func (c *UserController) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignUpRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	user, session, err := c.authService.SignUp(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.SetSessionCookie(w, session.ID, c.sessionTTL, c.secureCookies)
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewAuthenticatedUser(user))
}

// POST /users/login
func (c *UserController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	user, session, err := c.authService.Login(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.SetSessionCookie(w, session.ID, c.sessionTTL, c.secureCookies)
	utils.RespondWithJSON(w, http.StatusCreated, dtos.NewAuthenticatedUser(user))
}

// POST /users/logout
func (c *UserController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(utils.SessionCookieName); err == nil && cookie.Value != "" {
		if err := c.authService.Logout(r.Context(), cookie.Value); err != nil {
			utils.HandleAppError(w, err)
			return
		}
	}
	utils.ClearSessionCookie(w, c.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// GET /users/me
func (c *UserController) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewAuthenticatedUser(user))
}
