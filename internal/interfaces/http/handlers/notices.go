// internal/interfaces/http/handlers/notices.go
package handlers

import (
	"errors"
	"fmt"

	"github.com/your-org/seed-marketplace/internal/domain/checkout"
	"github.com/your-org/seed-marketplace/internal/domain/seed"
	"github.com/your-org/seed-marketplace/internal/domain/verification"
)

// Notices shown to shoppers as-is
const (
	LoginRequiredNotice = "Please login to view your cart."
	CartEmptyNotice     = "Your cart is empty."
	ImageRequiredNotice = "Please upload an image to verify quality."
	ImageUploadNotice   = "Error uploading image"
)

// notice returns the text to show for err, falling back to its message
func notice(err error) string {
	var uploadErr *seed.ImageUploadError
	switch {
	case errors.Is(err, checkout.ErrNotSignedIn):
		return LoginRequiredNotice
	case errors.Is(err, checkout.ErrEmptyCart):
		return CartEmptyNotice
	case errors.Is(err, verification.ErrMissingImage):
		return ImageRequiredNotice
	case errors.As(err, &uploadErr):
		return fmt.Sprintf("%s: %v", ImageUploadNotice, uploadErr.Err)
	default:
		return err.Error()
	}
}
