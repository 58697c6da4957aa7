package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/auth"
)

type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
	limiter  *auth.LoginLimiter
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager, limiter *auth.LoginLimiter) *AuthController {
	return &AuthController{
		service:  service,
		sessions: sessions,
		limiter:  limiter,
	}
}

// CredentialsRequest is the POST body for register and login.
type CredentialsRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Register creates an account and starts a session for it.
// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid credentials payload")
		return
	}

	user, err := ac.service.Register(req.UserName, req.Password)
	switch {
	case errors.Is(err, auth.ErrNameNotUnique):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username is already taken"})
		return
	case errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, auth.ErrInvalidUserName):
		respondBadRequest(c, err.Error())
		return
	case err != nil:
		respondInternalError(c, err, "register")
		return
	}

	if err := ac.sessions.CreateSession(c.Request, user.UserName()); err != nil {
		respondInternalError(c, err, "register session")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_name": user.UserName()})
}

// Login verifies credentials and starts a session. Failures are collapsed
// into one message so the endpoint does not leak which usernames exist.
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid credentials payload")
		return
	}

	if ac.limiter != nil && !ac.limiter.Allow(c.ClientIP(), req.UserName) {
		auth.TooManyAttempts(c)
		return
	}

	user, err := ac.service.Login(req.UserName, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		return
	}

	if err := ac.sessions.CreateSession(c.Request, user.UserName()); err != nil {
		respondInternalError(c, err, "login session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_name": user.UserName()})
}

// Logout destroys the session.
// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	respondSuccess(c, "logged out")
}
