package manager

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is returned when input is rejected before it reaches the store.
var ErrValidation = errors.New("validation failed")

var validate = validator.New()

type sleepInput struct {
	Night  string  `validate:"required,datetime=2006-01-02"`
	Amount float64 `validate:"gte=0"`
}

type tagInput struct {
	Name string `validate:"required"`
}

type commentInput struct {
	SleepID int64 `validate:"gt=0"`
}

type monthInput struct {
	Month int `validate:"gte=1,lte=12"`
	Year  int `validate:"gte=1,lte=9999"`
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
