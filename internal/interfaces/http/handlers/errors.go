package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/your-org/seed-marketplace/internal/domain/seed"
	"github.com/your-org/seed-marketplace/internal/domain/user"
)

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs) ||
		errors.Is(err, user.ErrWeakPassword) ||
		errors.Is(err, seed.ErrInvalidImage)
}
