package handler

import (
	"net/http"

	"usherhub/internal/dto"
	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	Service  *service.RequestService
	Validate *validator.Validate
}

func NewRequestHandler(svc *service.RequestService, validate *validator.Validate) *RequestHandler {
	return &RequestHandler{Service: svc, Validate: validate}
}

func (h *RequestHandler) Create(c echo.Context) error {
	var req dto.CreateRequestRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	selected := make([]uuid.UUID, 0, len(req.SelectedUshers))
	for _, raw := range req.SelectedUshers {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid usher id in selection")
		}
		selected = append(selected, id)
	}

	request, err := h.Service.Create(c.Request().Context(), service.RequestInput{
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		EventDetails:   req.EventDetails,
		EventType:      req.EventType,
		SelectedUshers: selected,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusCreated, "Request submitted successfully", map[string]any{
		"request": dto.RequestFromEntity(request),
	})
}

func (h *RequestHandler) List(c echo.Context) error {
	page, limit := parsePageLimit(c)
	filter := repository.RequestFilter{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}
	requests, total, err := h.Service.List(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"requests":   dto.RequestsFromEntities(requests),
		"pagination": dto.NewPagination(page, limit, total),
	})
}

func (h *RequestHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request id")
	}
	request, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{"request": dto.RequestFromEntity(request)})
}

func (h *RequestHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request id")
	}

	var req dto.UpdateRequestRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	update := service.RequestUpdate{Notes: req.Notes}
	if req.Status != nil {
		status := entity.RequestStatus(*req.Status)
		update.Status = &status
	}

	request, err := h.Service.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Request updated successfully", map[string]any{
		"request": dto.RequestFromEntity(request),
	})
}

func (h *RequestHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request id")
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Request deleted successfully", nil)
}
