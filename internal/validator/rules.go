// Package validator adds the domain binding rules to gin's validator.
package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"school_transport/internal/models"
)

// Register installs the custom rules on gin's default validator engine.
// It may be called more than once.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator %T", binding.Validator.Engine())
	}
	return RegisterRules(v)
}

func RegisterRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"trip_status":   validateTripStatus,
		"driver_status": validateDriverStatus,
		"user_status":   validateUserStatus,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return nil
}

func validateTripStatus(fl validator.FieldLevel) bool {
	return models.TripStatus(fl.Field().String()).IsValid()
}

func validateDriverStatus(fl validator.FieldLevel) bool {
	return models.DriverStatus(fl.Field().String()).IsValid()
}

func validateUserStatus(fl validator.FieldLevel) bool {
	return models.UserStatus(fl.Field().String()).IsValid()
}
