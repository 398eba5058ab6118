package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Default returns the process wide validator instance
func Default() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

// CustomValidator plugs go-playground/validator into echo's Bind/Validate
type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
