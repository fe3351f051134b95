package dto

import (
	errs "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rafabene/aeo-studio/internal/domain/entities"
)

var registerOnce sync.Once

// RegisterValidators registra as tags customizadas no validator do gin e
// faz os erros usarem o nome do campo JSON
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("pipeline_status", func(fl validator.FieldLevel) bool {
			_, ok := entities.ParseStatus(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			_, ok := entities.ParsePriority(fl.Field().String())
			return ok
		})
	})
}

var knownTags = map[string]bool{
	"required":        true,
	"email":           true,
	"min":             true,
	"max":             true,
	"url":             true,
	"pipeline_status": true,
	"priority":        true,
}

// BindingErrors traduz o erro do ShouldBindJSON em erros por campo
func BindingErrors(c *gin.Context, err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errs.As(err, &fieldErrors) {
		return []ValidationError{{
			Field:   "body",
			Message: T(c, "validation.malformed_body"),
		}}
	}

	result := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		key := "validation.invalid"
		if knownTags[fe.Tag()] {
			key = "validation." + fe.Tag()
		}
		result = append(result, ValidationError{
			Field:   fe.Field(),
			Message: T(c, key, map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}),
			Tag:     fe.Tag(),
		})
	}
	return result
}
