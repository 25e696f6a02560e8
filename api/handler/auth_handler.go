package handler

import (
	"net/http"
	"strings"

	"usherhub/api/middleware"
	"usherhub/internal/dto"
	"usherhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	result, err := h.Service.Login(c.Request().Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusOK, "Login successful", map[string]any{
		"token":               result.Token,
		"expiresIn":           result.ExpiresIn,
		"needsProfilePicture": result.NeedsProfilePicture,
		"user":                dto.UserFromEntity(result.User),
	})
}

// Register accepts either JSON or multipart form data; the multipart shape
// carries an optional profileImage file alongside the text fields.
func (h *AuthHandler) Register(c echo.Context) error {
	req, image, err := h.decodeRegister(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	result, err := h.Service.Register(c.Request().Context(), service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		SignupCode: req.SignupCode,
		Image:      image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return respondOK(c, http.StatusCreated, "Registration successful", map[string]any{
		"token":               result.Token,
		"expiresIn":           result.ExpiresIn,
		"needsProfilePicture": result.NeedsProfilePicture,
		"user":                dto.UserFromEntity(result.User),
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	current, err := h.Service.GetCurrentUser(c.Request().Context(), user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"user": dto.UserFromEntity(current),
	})
}

// Logout only acknowledges; tokens are stateless and die by expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	return respondOK(c, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	if image, _ := readUpload(c, "profileImage"); len(image) > 0 {
		updated, err := h.Service.ReplaceProfileImage(c.Request().Context(), user.ID, image)
		if err != nil {
			return respondServiceError(c, err)
		}
		return respondOK(c, http.StatusOK, "Profile updated successfully", map[string]any{
			"user": dto.UserFromEntity(updated),
		})
	}

	var req dto.UserUpdateRequest
	keys, err := decodeJSONWithKeys(c, &req)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	updated, rejected, err := h.Service.UpdateOwnProfile(c.Request().Context(), user.ID, req.ToUpdate(), keys)
	if err != nil {
		return respondServiceError(c, err)
	}

	payload := map[string]any{"user": dto.UserFromEntity(updated)}
	if len(rejected) > 0 {
		payload["rejectedFields"] = rejected
	}
	return respondOK(c, http.StatusOK, "Profile updated successfully", payload)
}

func (h *AuthHandler) decodeRegister(c echo.Context) (dto.RegisterRequest, []byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		req := dto.RegisterRequest{
			Name:       c.FormValue("name"),
			Email:      c.FormValue("email"),
			Password:   c.FormValue("password"),
			SignupCode: c.FormValue("signupCode"),
		}
		image, err := readUpload(c, "profileImage")
		if err != nil {
			return req, nil, err
		}
		return req, image, nil
	}

	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return req, nil, err
	}
	return req, nil, nil
}
