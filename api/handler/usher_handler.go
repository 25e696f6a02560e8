package handler

import (
	"net/http"

	"usherhub/api/middleware"
	"usherhub/internal/dto"
	"usherhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UsherHandler struct {
	Ushers   *service.UsherService
	Auth     *service.AuthService
	Validate *validator.Validate
}

func NewUsherHandler(ushers *service.UsherService, auth *service.AuthService, validate *validator.Validate) *UsherHandler {
	return &UsherHandler{Ushers: ushers, Auth: auth, Validate: validate}
}

// List is the public directory: active, visible ushers only, without email
// or any credential fields.
func (h *UsherHandler) List(c echo.Context) error {
	ushers, err := h.Ushers.ListVisible(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"ushers": dto.PublicUshersFromEntities(ushers),
	})
}

func (h *UsherHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid usher id")
	}
	usher, err := h.Ushers.GetVisible(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"usher": dto.PublicUsherFromEntity(usher),
	})
}

// UpdateProfile is the usher self-service update. The same whitelist as the
// admin path applies, minus the admin-only flags.
func (h *UsherHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.UserUpdateRequest
	keys, err := decodeJSONWithKeys(c, &req)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	updated, rejected, err := h.Auth.UpdateOwnProfile(c.Request().Context(), user.ID, req.ToUpdate(), keys)
	if err != nil {
		return respondServiceError(c, err)
	}

	payload := map[string]any{"user": dto.UserFromEntity(updated)}
	if len(rejected) > 0 {
		payload["rejectedFields"] = rejected
	}
	return respondOK(c, http.StatusOK, "Profile updated successfully", payload)
}

func (h *UsherHandler) UploadProfileImage(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	image, err := readUpload(c, "profileImage")
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if len(image) == 0 {
		return respondError(c, http.StatusBadRequest, "profileImage file is required")
	}

	updated, err := h.Auth.ReplaceProfileImage(c.Request().Context(), user.ID, image)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Profile image updated successfully", map[string]any{
		"profileImage": updated.Profile.ProfileImage,
		"user":         dto.UserFromEntity(updated),
	})
}
