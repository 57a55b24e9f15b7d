// internal/domain/seed/service.go
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/pkg/storage"
)

var (
	ErrSeedNotFound     = errors.New("seed not found")
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrInvalidImage     = errors.New("invalid image")
	ErrImageUpload      = errors.New("error uploading image")
)

// ImageUploadError carries the object store's reason for rejecting a
// listing image.
type ImageUploadError struct {
	Err error
}

func (e *ImageUploadError) Error() string {
	return fmt.Sprintf("%v: %v", ErrImageUpload, e.Err)
}

func (e *ImageUploadError) Unwrap() error {
	return e.Err
}

func (e *ImageUploadError) Is(target error) bool {
	return target == ErrImageUpload
}

// Service handles seed listing business logic
type Service struct {
	repo     Repository
	store    storage.ObjectStore
	validate *validator.Validate
	config   *config.Config
	logger   *logrus.Logger
}

// NewService creates a new seed service
func NewService(repo Repository, store storage.ObjectStore, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
	}
}

// CreateSeedRequest is the seller's listing form
type CreateSeedRequest struct {
	Name    string `form:"name" json:"name" validate:"required,max=255"`
	Quality string `form:"quality" json:"quality" validate:"required,max=100"`
	Price   int64  `form:"price" json:"price" validate:"gte=0,lte=10000000000"`
}

// ImageUpload is an optional image attached to a new listing
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ListSeeds returns every listing in the marketplace
func (s *Service) ListSeeds(ctx context.Context) ([]View, error) {
	seeds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withImageURLs(ctx, seeds), nil
}

// ListFarmerSeeds returns the listings created under farmer's name
func (s *Service) ListFarmerSeeds(ctx context.Context, farmer string) ([]View, error) {
	seeds, err := s.repo.ListByFarmer(ctx, farmer)
	if err != nil {
		return nil, err
	}
	return s.withImageURLs(ctx, seeds), nil
}

// GetSeed fetches a single listing
func (s *Service) GetSeed(ctx context.Context, id uint) (*Seed, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateSeed lists a new seed for the signed-in seller. The seller's full
// name becomes the farmer. An attached image is stored first; if that fails
// nothing is inserted.
func (s *Service) CreateSeed(ctx context.Context, seller *session.Identity, req *CreateSeedRequest, image *ImageUpload) (*Seed, error) {
	if seller == nil {
		return nil, ErrNotAuthenticated
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Quality = strings.TrimSpace(req.Quality)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	imagePath := ""
	if image != nil {
		path, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	listing := &Seed{
		Name:    req.Name,
		Quality: req.Quality,
		Price:   req.Price,
		Farmer:  seller.DisplayName(),
		Image:   imagePath,
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"seed_id": listing.ID,
		"farmer":  listing.Farmer,
	}).Info("seed listed")

	return listing, nil
}

// ResolveImage signs a single image reference
func (s *Service) ResolveImage(ctx context.Context, ref string) (storage.SignedURL, error) {
	return s.store.SignedURL(ctx, ref, s.config.Storage.SignedURLTTL)
}

func (s *Service) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	if err := s.validateImage(image); err != nil {
		return "", err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(image.Filename), "."))
	objectPath := fmt.Sprintf("public/%s.%s", uuid.New().String(), ext)

	if err := s.store.Upload(ctx, objectPath, image.ContentType, image.Body); err != nil {
		return "", &ImageUploadError{Err: err}
	}

	return objectPath, nil
}

func (s *Service) validateImage(image *ImageUpload) error {
	if image.Size > s.config.Upload.MaxSize {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, s.config.Upload.MaxSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(image.Filename), "."))
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: extension %q is not allowed", ErrInvalidImage, ext)
}

// withImageURLs signs each image on demand. A seed whose image cannot be
// signed is still listed, without a link.
func (s *Service) withImageURLs(ctx context.Context, seeds []Seed) []View {
	views := make([]View, len(seeds))
	for i, sd := range seeds {
		views[i] = View{Seed: sd}
		if sd.Image == "" {
			continue
		}

		signed, err := s.ResolveImage(ctx, sd.Image)
		if err != nil {
			s.logger.WithError(err).WithField("seed_id", sd.ID).Warn("failed to sign seed image")
			continue
		}
		expiresAt := signed.ExpiresAt
		views[i].ImageURL = signed.URL
		views[i].ImageExpiresAt = &expiresAt
	}
	return views
}
