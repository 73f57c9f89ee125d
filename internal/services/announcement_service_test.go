package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type announcementFixture struct {
	svc      *AnnouncementService
	mailer   *fakeMailer
	landlord *models.User
	tenant   *models.User
	leaseID  uuid.UUID
}

func newAnnouncementFixture() *announcementFixture {
	announcements := newFakeAnnouncementRepo()
	leases := newFakeLeaseRepo()
	tenants := newFakeLeaseTenantRepo()
	mailer := &fakeMailer{}

	landlord := &models.User{ID: uuid.New(), Name: "Lana", UserType: models.UserTypeLandlord}
	tenant := &models.User{ID: uuid.New(), Name: "Tom", Email: "tom@example.com", UserType: models.UserTypeTenant}

	leaseID := uuid.New()
	leases.add(&models.Lease{ID: leaseID, PropertyAddress: "1 High Street"}, landlord.ID)
	tenants.landlords[leaseID] = landlord.ID
	_ = tenants.Add(context.Background(), &models.LeaseTenant{
		ID:       uuid.New(),
		LeaseID:  leaseID,
		TenantID: tenant.ID,
		Tenant:   tenant.Projection(),
	})

	return &announcementFixture{
		svc:      NewAnnouncementService(announcements, leases, tenants, mailer),
		mailer:   mailer,
		landlord: landlord,
		tenant:   tenant,
		leaseID:  leaseID,
	}
}

func TestCreateAnnouncementEmailsTenants(t *testing.T) {
	f := newAnnouncementFixture()

	announcement, err := f.svc.Create(context.Background(), f.landlord.ID, f.leaseID, &dtos.AnnouncementRequest{
		Title:   "Boiler service",
		Message: "The boiler will be serviced on Friday morning.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Boiler service", announcement.Title)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, f.tenant.Email, f.mailer.sent[0].To)
	assert.Contains(t, f.mailer.sent[0].Subject, "Boiler service")
}

func TestCreateAnnouncementSurvivesMailerFailure(t *testing.T) {
	f := newAnnouncementFixture()
	f.mailer.err = errors.New("sendgrid down")

	announcement, err := f.svc.Create(context.Background(), f.landlord.ID, f.leaseID, &dtos.AnnouncementRequest{
		Title:   "Water off",
		Message: "Mains water will be off for an hour on Monday.",
	})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), f.tenant, announcement.ID)
	require.NoError(t, err)
	assert.Equal(t, "Water off", got.Title)
}

func TestCreateAnnouncementSanitizesContent(t *testing.T) {
	f := newAnnouncementFixture()

	announcement, err := f.svc.Create(context.Background(), f.landlord.ID, f.leaseID, &dtos.AnnouncementRequest{
		Title:   "Normal title",
		Message: `Please read <script>alert(1)</script> the notice`,
	})
	require.NoError(t, err)
	assert.NotContains(t, announcement.Message, "<script>")
	assert.Contains(t, announcement.Message, "Please read")
}

func TestAnnouncementHiddenFromNonMembers(t *testing.T) {
	f := newAnnouncementFixture()

	announcement, err := f.svc.Create(context.Background(), f.landlord.ID, f.leaseID, &dtos.AnnouncementRequest{
		Title:   "Garden work",
		Message: "Hedges will be trimmed next week.",
	})
	require.NoError(t, err)

	stranger := &models.User{ID: uuid.New(), UserType: models.UserTypeTenant}
	_, err = f.svc.Get(context.Background(), stranger, announcement.ID)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestUpdateAnnouncementWrongLandlord(t *testing.T) {
	f := newAnnouncementFixture()

	announcement, err := f.svc.Create(context.Background(), f.landlord.ID, f.leaseID, &dtos.AnnouncementRequest{
		Title:   "Garden work",
		Message: "Hedges will be trimmed next week.",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), uuid.New(), announcement.ID, &dtos.AnnouncementRequest{
		Title:   "Hijacked",
		Message: "Should never land.",
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
}

func TestDeleteAnnouncementTwiceIsNotFound(t *testing.T) {
	f := newAnnouncementFixture()

	announcement, err := f.svc.Create(context.Background(), f.landlord.ID, f.leaseID, &dtos.AnnouncementRequest{
		Title:   "Garden work",
		Message: "Hedges will be trimmed next week.",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), f.landlord.ID, announcement.ID))

	err = f.svc.Delete(context.Background(), f.landlord.ID, announcement.ID)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
