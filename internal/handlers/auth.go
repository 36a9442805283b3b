package handlers

import (
	"errors"
	"net/http"
	"time"

	"home_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "account data"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		if h.log != nil {
			h.log.Infow("register_bad_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		return
	}

	id, err := h.services.Authorization.Register(service.RegisterInput{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
		Email:    input.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		case errors.Is(err, service.ErrConflict):
			c.JSON(http.StatusBadRequest, failure(msgDuplicateAccount))
		default:
			if h.log != nil {
				h.log.Errorw("register_failed", "username", input.Username, "err", err)
			}
			c.JSON(http.StatusInternalServerError, failure(msgDatabaseError))
		}
		return
	}

	c.JSON(http.StatusOK, success(gin.H{"id": id}))
}

// @Summary      Log in and receive a session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "credentials"
// @Success      200  {object}  map[string]interface{}  "authenticated, name, adminlevel, expiry"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth [put]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		return
	}

	res, err := h.services.Authorization.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown user and wrong password alike.
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidCredentials})
			return
		}
		if h.log != nil {
			h.log.Errorw("login_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusInternalServerError, failure(msgDatabaseError))
		return
	}

	h.setSessionCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"name":          res.Name,
		"adminlevel":    res.AdminLevel,
		"expiry":        res.ExpiresAt.Unix(),
	})
}
