package handler

import (
	"github.com/ecommerce/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// ProfileHandler serves customer profiles
type ProfileHandler struct {
	BaseHandler
	profileService *identity.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *identity.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// List godoc
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Name search"
// @Success      200 {object} APIResponse[[]identity.ProfileResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	profiles, total, err := h.profileService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, profiles, total, filter.Page, filter.PageSize)
}

// Me godoc
// @Summary      Get the caller's profile
// @Tags         profiles
// @Produce      json
// @Success      200 {object} APIResponse[identity.ProfileResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profiles/me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Get godoc
// @Summary      Get a profile
// @Tags         profiles
// @Produce      json
// @Param        id path string true "Profile ID" format(uuid)
// @Success      200 {object} APIResponse[identity.ProfileResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Profile")
	if !ok {
		return
	}
	profile, err := h.profileService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Update godoc
// @Summary      Replace a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Profile ID" format(uuid)
// @Param        request body UpdateProfileRequest true "Profile"
// @Success      200 {object} APIResponse[identity.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Profile")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	profile, err := h.profileService.Update(c.Request.Context(), id, req.details())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Patch godoc
// @Summary      Partially update a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Profile ID" format(uuid)
// @Param        request body PatchProfileRequest true "Fields to change"
// @Success      200 {object} APIResponse[identity.ProfileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profiles/{id} [patch]
func (h *ProfileHandler) Patch(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Profile")
	if !ok {
		return
	}
	var req PatchProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	profile, err := h.profileService.Patch(c.Request.Context(), id, req.patch())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Delete godoc
// @Summary      Delete a profile and its user
// @Tags         profiles
// @Param        id path string true "Profile ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /profiles/{id} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Profile")
	if !ok {
		return
	}
	if err := h.profileService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
