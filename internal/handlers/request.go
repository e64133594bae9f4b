package handlers

import (
	"MysteryBox/internal/apperror"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"reflect"
	"strconv"
	"strings"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// parseBody decodes and validates a JSON body. On failure the error response
// has already been written and the returned bool is false.
func parseBody(c *fiber.Ctx, dest interface{}) (bool, error) {
	if err := c.BodyParser(dest); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	if err := validate.Struct(dest); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := map[string]string{}
			for _, fieldErr := range fieldErrs {
				details[fieldErr.Namespace()] = validationMessage(fieldErr)
			}
			return false, c.Status(fiber.StatusBadRequest).JSON(map[string]interface{}{
				"error":  "validation failed",
				"fields": details,
			})
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(map[string]interface{}{"error": err.Error()})
	}
	return true, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError writes err using the status of its kind.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperror.KindOf(err)
	return c.Status(apperror.MetadataFor(kind).HTTPStatus).JSON(map[string]interface{}{
		"error":     apperror.PublicMessage(err),
		"code":      kind,
		"retryable": apperror.MetadataFor(kind).Retryable,
	})
}
