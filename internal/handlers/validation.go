package handlers

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

var registerValidationsOnce sync.Once

// RegisterValidations installs the custom binding rules used by request DTOs
// and reports validation errors under their JSON names.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		if err := v.RegisterValidation("datestring", validateDateString); err != nil {
			panic(err)
		}
	})
}

// validateDateString accepts the formats understood by services.ParseDueDate
func validateDateString(fl validator.FieldLevel) bool {
	_, err := services.ParseDueDate(fl.Field().String())
	return err == nil
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// FieldError describes a single failed binding rule
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// respondBindError answers 400, listing failed rules when the body was
// well-formed but invalid.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	details := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		details[i] = FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		}
	}
	apierrors.BadRequestWithDetails(c, "Validation failed", details)
}

// respondError maps service errors to responses. Errors without a kind are
// logged and answered with 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if apierrors.Respond(c, err) {
		return
	}
	_ = c.Error(err)
	logger.ErrorContext(c.Request.Context(), "unhandled error",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
}
