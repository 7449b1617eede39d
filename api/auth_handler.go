package api

import (
	"encoding/json"
	"net/http"
	"time"

	"blogward/auth"
	"blogward/database"
	"blogward/errs"
	"blogward/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	roleRepo  *database.RoleRepo
	tokens    *auth.Tokens
}

func newAuthHandler(userRepo *database.UserRepo, roleRepo *database.RoleRepo, tokens *auth.Tokens) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		tokens:    tokens,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createRoleRequest struct {
	Name string `json:"name"`
}

// register creates a new user
// @Summary Register user
// @Description Creates a user with a hashed password and the default role
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body registerRequest true "Registration data"
// @Success 201 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid registration data"
// @Failure 409 {object} ErrorResponse "Conflict - Username or email already taken"
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		switch {
		case req.Username == "":
			h.responder.WriteValidationError(w, "username", "username is required")
			return
		case req.Email == "":
			h.responder.WriteValidationError(w, "email", "email is required")
			return
		case len(req.Password) < 5 || len(req.Password) > 50:
			h.responder.WriteValidationError(w, "password", "password must be between 5 and 50 characters")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to hash password")
			h.responder.WriteError(w, errs.NewInternalError("could not process password"))
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			RoleID:       1,
		}
		if err := h.userRepo.Insert(&user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "user created successfully",
		})
	}
}

// login verifies credentials and issues a session token
// @Summary Log in
// @Description Verifies username/password and sets the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login credentials"
// @Success 200 {object} map[string]string "Token"
// @Failure 401 {object} ErrorResponse "Unauthorized - Bad credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		// Missing user and wrong password produce the same response.
		if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		token, err := h.tokens.Issue(map[string]any{"sub": user.ID})
		if err != nil {
			h.logger.Error().Err(err).Uint("userId", user.ID).Msg("Failed to issue token")
			h.responder.WriteError(w, errs.NewInternalError("could not issue token"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(h.tokens.TTL()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteJSON(w, map[string]string{
			"status":       "success",
			"access_token": token,
		})
	}
}

// me returns the authenticated caller
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User "Caller profile"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ctxGetUserID(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authenticated"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user no longer exists"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}

// logout clears the session cookie
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string "Success message"
// @Router /auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "logged out",
		})
	}
}

// createRole creates a role
// @Summary Create role
// @Tags Auth
// @Accept json
// @Produce json
// @Param role body createRoleRequest true "Role data"
// @Success 201 {object} map[string]string "Success message"
// @Failure 409 {object} ErrorResponse "Conflict - Role already exists"
// @Router /auth/role/create [post]
func (h authHandler) createRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Name == "" {
			h.responder.WriteValidationError(w, "name", "name is required")
			return
		}

		role := models.Role{Name: req.Name}
		if err := h.roleRepo.Insert(&role); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "role created successfully",
		})
	}
}
