package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"scorecard-api/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator reports field names from json tags so validation messages
// match the wire format rather than the Go struct.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// statusForKind is the entire HTTP translation of the service error taxonomy.
func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.ErrorValidation:
		return fiber.StatusBadRequest
	case services.ErrorNotFound:
		return fiber.StatusNotFound
	case services.ErrorConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError maps a service error onto the uniform error body. Internal
// errors are logged server-side and their details suppressed from the client.
func writeError(c *fiber.Ctx, err error) error {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		status := statusForKind(svcErr.Kind)
		message := svcErr.Message
		if svcErr.Kind == services.ErrorInternal {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
			message = "Internal Server Error"
		}
		return writeErrorStatus(c, status, message)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return writeErrorStatus(c, fiber.StatusInternalServerError, "Internal Server Error")
}

func writeErrorStatus(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message": message,
			"status":  status,
		},
	})
}

// validationMessage turns the first validator failure into a client-readable
// message in terms of the JSON field that failed.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is a required field", fe.Field())
		case "min":
			return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	return "invalid request body"
}
