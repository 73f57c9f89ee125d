package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// MaxDocumentsPerAuthor caps live documents per uploader per lease.
const MaxDocumentsPerAuthor = 5

// DocumentUpload is the multipart file payload for a document create.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

type DocumentService struct {
	documentRepo repositories.DocumentRepository
	leaseRepo    repositories.LeaseRepository
	tenantRepo   repositories.LeaseTenantRepository
	blobs        BlobStore
}

func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.LeaseTenantRepository,
	blobs BlobStore,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
		blobs:        blobs,
	}
}

// Create uploads the file and stores the document row. The document
// type mirrors the uploader's role, never the request.
func (s *DocumentService) Create(ctx context.Context, user *models.User, leaseID uuid.UUID, name string, upload *DocumentUpload) (*models.Document, error) {
	if err := s.requireMember(ctx, user, leaseID); err != nil {
		return nil, err
	}

	count, err := s.documentRepo.CountByAuthor(ctx, leaseID, user.ID)
	if err != nil {
		return nil, err
	}
	if count >= MaxDocumentsPerAuthor {
		return nil, utils.NewAppError(
			http.StatusBadRequest,
			utils.ErrCodeValidation,
			fmt.Sprintf("You can have at most %d documents on a lease", MaxDocumentsPerAuthor),
			nil,
		)
	}

	docType := models.DocumentTypeTenant
	if user.UserType == models.UserTypeLandlord {
		docType = models.DocumentTypeLandlord
	}

	doc := &models.Document{
		ID:       uuid.New(),
		LeaseID:  leaseID,
		AuthorID: user.ID,
		Name:     utils.SanitizeText(name),
		FileName: documentKey(leaseID),
		FileType: upload.ContentType,
		Type:     docType,
	}

	if err := s.blobs.Upload(ctx, doc.FileName, upload.ContentType, upload.Body); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, doc.FileName); delErr != nil {
			utils.Logger.WithError(delErr).Warnf("Failed to delete orphaned blob %s", doc.FileName)
		}
		return nil, err
	}

	doc.Author = user.Projection()
	return doc, nil
}

// Get returns the document with a temporary download URL.
func (s *DocumentService) Get(ctx context.Context, user *models.User, documentID uuid.UUID) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Document not found")
		}
		return nil, err
	}
	if err := s.requireMember(ctx, user, doc.LeaseID); err != nil {
		return nil, err
	}

	url, err := s.blobs.TemporaryURL(ctx, doc.FileName)
	if err != nil {
		return nil, err
	}
	doc.URL = url
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, user *models.User, leaseID uuid.UUID) ([]*models.Document, error) {
	if err := s.requireMember(ctx, user, leaseID); err != nil {
		return nil, err
	}
	return s.documentRepo.ListByLeaseID(ctx, leaseID)
}

// Rename is restricted to the uploading author.
func (s *DocumentService) Rename(ctx context.Context, user *models.User, documentID uuid.UUID, name string) (*models.Document, error) {
	doc, err := s.getAuthored(ctx, user, documentID)
	if err != nil {
		return nil, err
	}

	doc.Name = utils.SanitizeText(name)
	if err := s.documentRepo.UpdateName(ctx, documentID, doc.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Document not found")
		}
		return nil, err
	}
	return doc, nil
}

// Delete soft-deletes the row and removes the blob. Author only.
func (s *DocumentService) Delete(ctx context.Context, user *models.User, documentID uuid.UUID) error {
	doc, err := s.getAuthored(ctx, user, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.SoftDelete(ctx, documentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Document not found")
		}
		return err
	}

	if err := s.blobs.Delete(ctx, doc.FileName); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to delete blob for document %s", documentID)
	}
	return nil
}

func (s *DocumentService) getAuthored(ctx context.Context, user *models.User, documentID uuid.UUID) (*models.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Document not found")
		}
		return nil, err
	}
	if doc.AuthorID != user.ID {
		return nil, utils.ForbiddenError("Only the uploader can modify this document")
	}
	return doc, nil
}

func (s *DocumentService) requireMember(ctx context.Context, user *models.User, leaseID uuid.UUID) error {
	owner, err := s.leaseRepo.LandlordID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Lease not found")
		}
		return err
	}
	if user.ID == owner {
		return nil
	}
	isTenant, err := s.tenantRepo.IsTenant(ctx, leaseID, user.ID)
	if err != nil {
		return err
	}
	if !isTenant {
		return utils.NotFoundError("Lease not found")
	}
	return nil
}

func documentKey(leaseID uuid.UUID) string {
	return fmt.Sprintf("documents/%s/%s", leaseID, uuid.New())
}
