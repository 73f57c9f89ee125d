package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// PropertyImage is the optional multipart payload attached to a
// property create/update. ContentType has already been checked at the
// controller boundary.
type PropertyImage struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

type PropertyService struct {
	propertyRepo repositories.PropertyRepository
	blobs        BlobStore
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, blobs BlobStore) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		blobs:        blobs,
	}
}

func (s *PropertyService) Create(ctx context.Context, landlordID uuid.UUID, req *dtos.PropertyFormRequest, image *PropertyImage) (*models.Property, error) {
	property := &models.Property{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeText(req.Description),
		Address:     utils.SanitizeText(req.Address),
	}

	if image != nil {
		key := propertyImageKey(property.ID)
		if err := s.blobs.Upload(ctx, key, image.ContentType, image.Body); err != nil {
			return nil, err
		}
		property.ImageName = &key
		property.ImageType = &image.ContentType
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) Get(ctx context.Context, landlordID, propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.getOwned(ctx, landlordID, propertyID)
	if err != nil {
		return nil, err
	}
	s.attachImageURL(ctx, property)
	return property, nil
}

func (s *PropertyService) List(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	properties, err := s.propertyRepo.ListByLandlordID(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	for _, p := range properties {
		s.attachImageURL(ctx, p)
	}
	return properties, nil
}

func (s *PropertyService) Update(ctx context.Context, landlordID, propertyID uuid.UUID, req *dtos.PropertyFormRequest, image *PropertyImage) (*models.Property, error) {
	property, err := s.getOwned(ctx, landlordID, propertyID)
	if err != nil {
		return nil, err
	}

	property.Name = utils.SanitizeText(req.Name)
	property.Description = utils.SanitizeText(req.Description)
	property.Address = utils.SanitizeText(req.Address)

	if image != nil {
		key := propertyImageKey(property.ID)
		if err := s.blobs.Upload(ctx, key, image.ContentType, image.Body); err != nil {
			return nil, err
		}
		if property.ImageName != nil {
			if err := s.blobs.Delete(ctx, *property.ImageName); err != nil {
				utils.Logger.WithError(err).Warnf("Failed to delete replaced image blob for property %s", property.ID)
			}
		}
		property.ImageName = &key
		property.ImageType = &image.ContentType
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, err
	}
	s.attachImageURL(ctx, property)
	return property, nil
}

// Delete soft-deletes the row and removes the image blob. Blob removal
// failures are logged, not surfaced: the row is already gone.
func (s *PropertyService) Delete(ctx context.Context, landlordID, propertyID uuid.UUID) error {
	property, err := s.getOwned(ctx, landlordID, propertyID)
	if err != nil {
		return err
	}

	if err := s.propertyRepo.SoftDelete(ctx, propertyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Property not found")
		}
		return err
	}

	if property.ImageName != nil {
		if err := s.blobs.Delete(ctx, *property.ImageName); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to delete image blob for property %s", propertyID)
		}
	}
	return nil
}

func (s *PropertyService) getOwned(ctx context.Context, landlordID, propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, utils.ForbiddenError("You do not own this property")
	}
	return property, nil
}

func (s *PropertyService) attachImageURL(ctx context.Context, p *models.Property) {
	if p.ImageName == nil {
		return
	}
	url, err := s.blobs.TemporaryURL(ctx, *p.ImageName)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to presign image URL for property %s", p.ID)
		return
	}
	p.ImageURL = url
}

func propertyImageKey(propertyID uuid.UUID) string {
	return fmt.Sprintf("properties/%s/%s", propertyID, uuid.New())
}
