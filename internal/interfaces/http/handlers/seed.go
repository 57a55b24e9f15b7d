// internal/interfaces/http/handlers/seed.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/domain/seed"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/domain/verification"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/middleware"
	"github.com/your-org/seed-marketplace/internal/pkg/storage"
)

// SeedService is the item source and item creation collaborator
type SeedService interface {
	ListSeeds(ctx context.Context) ([]seed.View, error)
	ListFarmerSeeds(ctx context.Context, farmer string) ([]seed.View, error)
	GetSeed(ctx context.Context, id uint) (*seed.Seed, error)
	CreateSeed(ctx context.Context, seller *session.Identity, req *seed.CreateSeedRequest, image *seed.ImageUpload) (*seed.Seed, error)
	ResolveImage(ctx context.Context, ref string) (storage.SignedURL, error)
}

// VerificationRecorder counts verification outcomes
type VerificationRecorder interface {
	Verification(outcome string)
}

// SeedHandler handles marketplace and farmer dashboard endpoints
type SeedHandler struct {
	seedService SeedService
	verifier    verification.Verifier
	recorder    VerificationRecorder
	logger      *logrus.Logger
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seedService SeedService, verifier verification.Verifier, recorder VerificationRecorder, logger *logrus.Logger) *SeedHandler {
	return &SeedHandler{
		seedService: seedService,
		verifier:    verifier,
		recorder:    recorder,
		logger:      logger,
	}
}

// ListSeeds returns every listing with signed image links
func (h *SeedHandler) ListSeeds(c *gin.Context) {
	seeds, err := h.seedService.ListSeeds(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list seeds")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": seeds,
	})
}

// ResolveImage signs one image reference
func (h *SeedHandler) ResolveImage(c *gin.Context) {
	ref := strings.TrimSpace(c.Query("ref"))
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ref is required",
		})
		return
	}

	signed, err := h.seedService.ResolveImage(c.Request.Context(), ref)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, storage.ErrInvalidPath) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": signed,
	})
}

// ListFarmerSeeds returns the signed-in seller's own listings
func (h *SeedHandler) ListFarmerSeeds(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	seeds, err := h.seedService.ListFarmerSeeds(c.Request.Context(), identity.DisplayName())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": seeds,
	})
}

// CreateSeed lists a new seed from a multipart form with an optional image
func (h *SeedHandler) CreateSeed(c *gin.Context) {
	var req seed.CreateSeedRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var image *seed.ImageUpload
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read image",
			})
			return
		}
		defer file.Close()

		image = &seed.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		}
	}

	identity, _ := middleware.GetIdentity(c)
	ctx := c.Request.Context()

	created, err := h.seedService.CreateSeed(ctx, &identity, &req, image)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, seed.ErrNotAuthenticated):
			status = http.StatusUnauthorized
		case isValidationError(err):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error": notice(err),
		})
		return
	}

	// The dashboard shows the seller's refreshed list after every addition.
	mine, err := h.seedService.ListFarmerSeeds(ctx, created.Farmer)
	if err != nil {
		h.logger.WithError(err).WithField("farmer", created.Farmer).Warn("failed to refresh farmer seeds")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Seed added successfully",
		"data": gin.H{
			"seed":     created,
			"my_seeds": mine,
		},
	})
}

// VerifyQuality asks the inference service to grade a seed image
func (h *SeedHandler) VerifyQuality(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": ImageRequiredNotice,
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read image",
		})
		return
	}
	defer file.Close()

	result, err := h.verifier.Verify(c.Request.Context(), &verification.Image{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		if errors.Is(err, verification.ErrVerifierDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   err.Error(),
				"enabled": false,
			})
			return
		}

		if errors.Is(err, verification.ErrMissingImage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": notice(err),
			})
			return
		}

		h.recorder.Verification("error")
		h.logger.WithError(err).Warn("seed verification failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.recorder.Verification(string(result.Verdict))

	c.JSON(http.StatusOK, gin.H{
		"message": result.Notice(),
		"data":    result,
	})
}
