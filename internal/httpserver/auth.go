package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type authResponse struct {
	User   interface{}     `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func anonymousHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, pair, err := d.Auth.Anonymous(c.Request.Context())
		if err != nil {
			d.Logger.WithError(err).Error("anonymous session failed")
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, authResponse{User: u, Tokens: pair})
	}
}

func signupHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		u, pair, err := d.Auth.Signup(c.Request.Context(), sessionFrom(c), auth.SignupInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusCreated, authResponse{User: u, Tokens: pair})
	}
}

func loginHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		u, pair, err := d.Auth.Login(c.Request.Context(), sessionFrom(c), req.Email, req.Password)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		respond(c, http.StatusOK, authResponse{User: u, Tokens: pair})
	}
}

func logoutHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if err := d.Auth.Logout(c.Request.Context(), token); err != nil {
				d.Logger.WithError(err).Warn("logout: token revocation failed")
			}
		}
		respond(c, http.StatusOK, gin.H{"loggedOut": true})
	}
}

func meHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		respond(c, http.StatusOK, gin.H{
			"userId":      sess.UserID,
			"isAnonymous": sess.IsAnonymous,
			"role":        sess.Role,
		})
	}
}
