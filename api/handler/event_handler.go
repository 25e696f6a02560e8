package handler

import (
	"net/http"
	"time"

	"usherhub/api/middleware"
	"usherhub/internal/dto"
	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	Service  *service.EventService
	Validate *validator.Validate
}

func NewEventHandler(svc *service.EventService, validate *validator.Validate) *EventHandler {
	return &EventHandler{Service: svc, Validate: validate}
}

func (h *EventHandler) List(c echo.Context) error {
	filter := repository.EventFilter{Status: c.QueryParam("status")}
	if from := c.QueryParam("dateFrom"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid dateFrom")
		}
		filter.DateFrom = &parsed
	}
	if to := c.QueryParam("dateTo"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid dateTo")
		}
		filter.DateTo = &parsed
	}

	events, err := h.Service.List(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{
		"events": dto.EventsFromEntities(events),
		"count":  len(events),
	})
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid event id")
	}
	event, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "", map[string]any{"event": dto.EventFromEntity(event)})
}

func (h *EventHandler) Create(c echo.Context) error {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateEventRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	event, err := h.Service.Create(c.Request().Context(), service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Client:      req.Client,
		ClientEmail: req.ClientEmail,
		UsherCount:  req.UsherCount,
		Images:      req.Images,
	}, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusCreated, "Event created successfully", map[string]any{
		"event": dto.EventFromEntity(event),
	})
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid event id")
	}

	var req dto.UpdateEventRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if ok, err := validatePayload(c, h.Validate, req); !ok {
		return err
	}

	update := service.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Client:      req.Client,
		ClientEmail: req.ClientEmail,
		UsherCount:  req.UsherCount,
	}
	if req.Status != nil {
		status := entity.EventStatus(*req.Status)
		update.Status = &status
	}

	event, err := h.Service.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Event updated successfully", map[string]any{
		"event": dto.EventFromEntity(event),
	})
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid event id")
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, http.StatusOK, "Event deleted successfully", nil)
}
