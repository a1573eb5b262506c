// Package controller holds the response envelope and request helpers shared by
// the user and admin handlers.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dhanyabad11/PrepForge-Backend/internal/apperror"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const validationFailed = "Validation failed"

// UseJSONFieldNames makes validation errors report the json name of a field
// instead of its Go name.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

func OK(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.SuccessResponse{Success: true, Data: data})
}

// BadRequest reports a binding failure. Validator errors are listed per field.
func BadRequest(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationFailed, Errors: fields})
		return
	}
	log.Ctx(ctx.Request.Context()).Warn().Err(err).Msg("Failed to bind request")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:  validationFailed,
		Errors: []dto.FieldError{{Field: "body", Message: "malformed request body"}},
	})
}

// Fail maps err to a status and a client-safe message.
func Fail(ctx *gin.Context, err error, production bool) {
	status := apperror.HTTPStatus(err)
	event := log.Ctx(ctx.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = log.Ctx(ctx.Request.Context()).Error()
	}
	event.Err(err).Int("status", status).Str("path", ctx.FullPath()).Msg("Request failed")
	ctx.JSON(status, dto.ErrorResponse{Error: apperror.PublicMessage(err, production)})
}

// IDParam parses a positive integer path parameter, answering 400 itself on
// failure.
func IDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  validationFailed,
			Errors: []dto.FieldError{{Field: name, Message: "must be a positive integer"}},
		})
		return 0, false
	}
	return uint(id), true
}

// UserParam reads a required user id path parameter.
func UserParam(ctx *gin.Context, name string) (string, bool) {
	userID := strings.TrimSpace(ctx.Param(name))
	if userID == "" || len(userID) > 128 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  validationFailed,
			Errors: []dto.FieldError{{Field: name, Message: "must be a non-empty id of at most 128 characters"}},
		})
		return "", false
	}
	return userID, true
}

// fieldPath drops the top-level struct name, "GenerateFeedbackRequest.answer" -> "answer".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}
