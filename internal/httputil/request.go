package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		if e := validationError(err); e != nil {
			return e
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// BindQuery binds the query string of the request to data.
func BindQuery(c *gin.Context, data any) error {
	if err := c.ShouldBindQuery(data); err != nil {
		if e := validationError(err); e != nil {
			return e
		}

		return fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}

	return nil
}

// BindURI binds the URI parameters of the request to data.
func BindURI(c *gin.Context, data any) error {
	if err := c.ShouldBindUri(data); err != nil {
		if e := validationError(err); e != nil {
			return e
		}

		return fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}

	return nil
}

// validationError joins all field errors of a validator error into one
// error. It returns nil if err is not a validation error.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	texts := make([]string, 0, len(errs))
	for _, e := range errs {
		texts = append(texts, ValidationErrorToText(e))
	}

	return errors.New(strings.Join(texts, ", "))
}

// ValidationErrorToText returns a readable message for a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	field := lowerFirst(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	}
	return fmt.Sprintf("%s is not valid", field)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
