package apperror

import (
	"reflect"
	"strings"

	"go-hrms/internal/shared/objectid"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ObjectIDTag is the binding tag for query parameters that carry record ids.
const ObjectIDTag = "objectid"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation(ObjectIDTag, func(fl validator.FieldLevel) bool {
			return objectid.IsValid(fl.Field().String())
		})
	}
}

// Init makes gin's binding validator report field names using their json/form
// tag so query binding errors read like the request that produced them.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	}
}
