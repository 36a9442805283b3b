package handlers

import (
	"errors"
	"net/http"

	"home_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required"`
}

// @Summary      Change the caller's password
// @Tags         authinfo
// @Accept       json
// @Produce      json
// @Param        body  body  changePasswordRequest  true  "old and new password"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /authinfo [put]
func (h *Handler) changePassword(c *gin.Context) {
	var input changePasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		return
	}

	userID, okID := currentUserID(c)
	username, okName := currentUsername(c)
	if !okID || !okName {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no verified session"})
		return
	}

	// The target account is the one in the VERIFIED claims. A body naming
	// someone else is an authorization failure, not a lookup.
	if input.Username != username {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	err := h.services.Authorization.ChangePassword(userID, input.Password, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, failure(msgOldPasswordWrong))
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, failure("No Such User Exists"))
		default:
			if h.log != nil {
				h.log.Errorw("change_password_failed", "userId", userID, "err", err)
			}
			c.JSON(http.StatusInternalServerError, failure(msgDatabaseError))
		}
		return
	}

	c.JSON(http.StatusOK, success("Password Updated"))
}

// @Summary      Delete the caller's account
// @Tags         authinfo
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /authinfo [delete]
func (h *Handler) deleteAccount(c *gin.Context) {
	// Identity comes from the verified cookie claims, never the body.
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no verified session"})
		return
	}

	if err := h.services.Authorization.DeleteAccount(userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, failure("No Such User Exists"))
			return
		}
		if h.log != nil {
			h.log.Errorw("delete_account_failed", "userId", userID, "err", err)
		}
		c.JSON(http.StatusInternalServerError, failure(msgDatabaseError))
		return
	}

	// The account is gone; the session cookie has nothing left to prove.
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, success("User Deleted"))
}
