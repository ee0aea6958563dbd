package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/savagerise/storefront/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrShippingInvalid 收货信息不完整
var ErrShippingInvalid = errors.New("shipping info invalid")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// ShippingError 字段级校验错误
type ShippingError struct {
	Fields map[string]string
}

func (e *ShippingError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("shipping info invalid: %s", strings.Join(names, ", "))
}

func (e *ShippingError) Unwrap() error {
	return ErrShippingInvalid
}

// NormalizeShipping 去除首尾空白，空的补充地址置为 nil
func NormalizeShipping(info models.ShippingInfo) models.ShippingInfo {
	info.FullName = strings.TrimSpace(info.FullName)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	info.AddressLine1 = strings.TrimSpace(info.AddressLine1)
	info.PostalCode = strings.TrimSpace(info.PostalCode)
	info.City = strings.TrimSpace(info.City)
	info.Country = strings.TrimSpace(info.Country)
	if info.AddressLine2 != nil {
		line2 := strings.TrimSpace(*info.AddressLine2)
		if line2 == "" {
			info.AddressLine2 = nil
		} else {
			info.AddressLine2 = &line2
		}
	}
	return info
}

// ValidateShipping 校验收货信息
func ValidateShipping(info models.ShippingInfo) error {
	err := validate.Struct(info)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrShippingInvalid, err)
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return &ShippingError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	}
	return "is invalid"
}
