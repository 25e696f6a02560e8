package handler

import (
	"net/http"

	"usherhub/api/middleware"
	"usherhub/internal/dto"
	"usherhub/internal/repository"
	"usherhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	Service  *service.AdminService
	Validate *validator.Validate
}

func NewAdminHandler(svc *service.AdminService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{Service: svc, Validate: validate}
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.Service.Dashboard(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{"stats": stats})
}

func (h *AdminHandler) GenerateCode(c echo.Context) error {
	admin, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	code, err := h.Service.GenerateCode(c.Request().Context(), admin.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusCreated, "Signup code generated successfully", map[string]any{
		"signupCode": dto.SignupCodeFromEntity(code),
	})
}

func (h *AdminHandler) ListCodes(c echo.Context) error {
	codes, err := h.Service.ListCodes(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"codes": dto.SignupCodesFromEntities(codes),
	})
}

func (h *AdminHandler) DeleteCode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid code id")
	}
	if err := h.Service.DeleteCode(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Signup code deleted successfully", nil)
}

func (h *AdminHandler) ListUshers(c echo.Context) error {
	page, limit := parsePageLimit(c)
	filter := repository.UsherFilter{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}
	ushers, total, err := h.Service.ListUshers(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"ushers":     dto.UsersFromEntities(ushers),
		"pagination": dto.NewPagination(page, limit, total),
	})
}

func (h *AdminHandler) UpdateUsher(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid usher id")
	}

	var req dto.UserUpdateRequest
	keys, err := decodeJSONWithKeys(c, &req)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	usher, rejected, err := h.Service.UpdateUsher(c.Request().Context(), id, req.ToUpdate(), keys)
	if err != nil {
		return respondServiceError(c, err)
	}

	payload := map[string]any{"usher": dto.UserFromEntity(usher)}
	if len(rejected) > 0 {
		payload["rejectedFields"] = rejected
	}
	return respondOK(c, http.StatusOK, "Usher updated successfully", payload)
}

func (h *AdminHandler) DeactivateUsher(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid usher id")
	}
	if err := h.Service.DeactivateUsher(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Usher deactivated", nil)
}

func (h *AdminHandler) PurgeUsher(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid usher id")
	}
	if err := h.Service.PurgeUsher(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Usher deleted successfully", nil)
}

func (h *AdminHandler) SetVisibility(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid usher id")
	}

	var req dto.VisibilityRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	usher, err := h.Service.SetUsherVisibility(c.Request().Context(), id, req.IsVisible)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Usher hidden on website"
	if req.IsVisible {
		message = "Usher shown on website"
	}
	return respondOK(c, http.StatusOK, message, map[string]any{
		"usher": dto.UserFromEntity(usher),
	})
}

func (h *AdminHandler) RejectProfilePicture(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid usher id")
	}

	var req dto.RejectPictureRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	usher, err := h.Service.RejectProfilePicture(c.Request().Context(), id, req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Profile picture rejected successfully", map[string]any{
		"usher": dto.UserFromEntity(usher),
	})
}
