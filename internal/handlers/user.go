package handlers

import (
	"errors"
	"net/http"

	"home_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Bio   string `json:"bio"`
	Place string `json:"place"`
}

// @Summary      Get the caller's profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user [get]
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no verified session"})
		return
	}

	profile, err := h.services.Profiles.Get(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, failure("User not found"))
			return
		}
		if h.log != nil {
			h.log.Errorw("get_profile_failed", "userId", userID, "err", err)
		}
		c.JSON(http.StatusInternalServerError, failure(msgDatabaseError))
		return
	}

	c.JSON(http.StatusOK, success(profile))
}

// @Summary      Update the caller's profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body  updateProfileRequest  true  "profile fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /user [put]
func (h *Handler) updateProfile(c *gin.Context) {
	var input updateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no verified session"})
		return
	}

	profile, err := h.services.Profiles.Update(userID, input.Name, input.Email, input.Bio, input.Place)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, failure(msgBadUserData))
		case errors.Is(err, service.ErrConflict):
			c.JSON(http.StatusBadRequest, failure(msgDuplicateAccount))
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, failure("User not found"))
		default:
			if h.log != nil {
				h.log.Errorw("update_profile_failed", "userId", userID, "err", err)
			}
			c.JSON(http.StatusInternalServerError, failure(msgDatabaseError))
		}
		return
	}

	c.JSON(http.StatusOK, success(profile))
}
