package services

import (
	"context"
	"encoding/json"
	"html"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/noble-it/hub/internal/apperrors"
	"github.com/noble-it/hub/internal/models"
	"github.com/noble-it/hub/internal/uptime"
	"gorm.io/datatypes"
)

// MonitorClient is the slice of the uptime vendor client the services use.
type MonitorClient interface {
	Enabled() bool
	RegisterMonitor(ctx context.Context, url, friendlyName string) (string, error)
	ListMonitors(ctx context.Context) ([]uptime.Monitor, error)
}

// IncidentNotifier receives incident lifecycle changes after they commit.
type IncidentNotifier interface {
	IncidentOpened(ctx context.Context, incident models.Incident) error
	IncidentResolved(ctx context.Context, incident models.Incident) error
}

var (
	validate  = newValidator()
	plainText = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, e.g. "client.name".
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct returns the first violation as an InvalidInput error.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok || len(violations) == 0 {
		return apperrors.Invalid("", "Invalid request")
	}

	first := violations[0]
	field := first.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	return apperrors.Invalid(field, violationMessage(first))
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be an RFC 3339 timestamp"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// cleanText strips markup from free text and trims surrounding whitespace.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func metadata(fields map[string]interface{}) datatypes.JSON {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
