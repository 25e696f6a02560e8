package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"usherhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondOK(c echo.Context, status int, message string, payload map[string]any) error {
	body := map[string]any{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	return c.JSON(status, body)
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"message": message,
	})
}

func respondValidationError(c echo.Context, errs []fieldError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// respondServiceError maps sentinel service errors onto statuses. Anything
// unrecognized, including the integrity fault, surfaces as a generic server
// error; the detail stays in the logs.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidSignupCode):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUshersUnavailable):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCodeAlreadyUsed):
		return respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUsherNotFound):
		return respondError(c, http.StatusNotFound, err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, "server error")
	}
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// decodeJSONWithKeys is the permissive variant for update payloads: unknown
// keys do not fail the decode, they are returned so the whitelist can report
// them as rejected.
func decodeJSONWithKeys(c echo.Context, target any) ([]string, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	return keys, nil
}

func validatePayload(c echo.Context, validate *validator.Validate, payload any) (bool, error) {
	if validate == nil {
		return true, nil
	}
	err := validate.Struct(payload)
	if err == nil {
		return true, nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false, respondError(c, http.StatusBadRequest, err.Error())
	}
	fields := make([]fieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: validationMessage(fe),
		})
	}
	return false, respondValidationError(c, fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters or items"
	case "max":
		return "cannot exceed " + fe.Param() + " characters or items"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "e164":
		return "must be a valid phone number"
	case "uuid":
		return "must be a valid id"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

func parsePageLimit(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// readUpload pulls an optional multipart file field, returning nil when the
// field is absent.
func readUpload(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
