package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type tenantFixture struct {
	svc      *TenantService
	leases   *fakeLeaseRepo
	tenants  *fakeLeaseTenantRepo
	mailer   *fakeMailer
	landlord *models.User
	lease    *models.Lease
}

func newTenantFixture(inviteTTL time.Duration) *tenantFixture {
	leases := newFakeLeaseRepo()
	tenants := newFakeLeaseTenantRepo()
	mailer := &fakeMailer{}

	landlord := &models.User{ID: uuid.New(), Name: "Lana", UserType: models.UserTypeLandlord}
	lease := &models.Lease{
		ID:              uuid.New(),
		InviteCode:      "STATICODE1",
		PropertyAddress: "1 High Street",
	}
	leases.add(lease, landlord.ID)
	tenants.landlords[lease.ID] = landlord.ID

	svc := NewTenantService(leases, tenants, mailer, []byte("test-invite-key"), inviteTTL, "https://app.test")
	return &tenantFixture{
		svc:      svc,
		leases:   leases,
		tenants:  tenants,
		mailer:   mailer,
		landlord: landlord,
		lease:    lease,
	}
}

func TestInviteAndJoinRoundTrip(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	require.NoError(t, f.svc.Invite(context.Background(), f.landlord.ID, f.lease.ID, tenant.Email))
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, tenant.Email, f.mailer.sent[0].To)

	token, err := f.svc.signInvite(f.lease.ID, tenant.Email)
	require.NoError(t, err)

	joined, err := f.svc.Join(context.Background(), tenant, token)
	require.NoError(t, err)
	assert.Equal(t, f.lease.ID, joined.ID)
	assert.Empty(t, joined.InviteCode)

	isTenant, err := f.tenants.IsTenant(context.Background(), f.lease.ID, tenant.ID)
	require.NoError(t, err)
	assert.True(t, isTenant)
}

func TestJoinInviteIssuedToDifferentEmail(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	token, err := f.svc.signInvite(f.lease.ID, "someone-else@example.com")
	require.NoError(t, err)

	_, err = f.svc.Join(context.Background(), tenant, token)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
}

func TestJoinExpiredInvite(t *testing.T) {
	f := newTenantFixture(-time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	token, err := f.svc.signInvite(f.lease.ID, tenant.Email)
	require.NoError(t, err)

	_, err = f.svc.Join(context.Background(), tenant, token)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "Invite code has expired", appErr.Message)
}

func TestJoinWithStaticCode(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	joined, err := f.svc.Join(context.Background(), tenant, "STATICODE1")
	require.NoError(t, err)
	assert.Equal(t, f.lease.ID, joined.ID)

	// A second join attempt is a conflict, not a duplicate membership.
	_, err = f.svc.Join(context.Background(), tenant, "STATICODE1")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
}

func TestJoinWithUnknownCode(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	_, err := f.svc.Join(context.Background(), tenant, "NOSUCHCODE")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestInviteExistingTenantIsConflict(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	_ = f.tenants.Add(context.Background(), &models.LeaseTenant{
		ID:       uuid.New(),
		LeaseID:  f.lease.ID,
		TenantID: tenant.ID,
		Tenant:   tenant.Projection(),
	})

	err := f.svc.Invite(context.Background(), f.landlord.ID, f.lease.ID, tenant.Email)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Empty(t, f.mailer.sent)
}

func TestRemoveTenantThenLeaveIsNotFound(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)
	tenant := &models.User{ID: uuid.New(), Email: "tom@example.com", UserType: models.UserTypeTenant}

	_, err := f.svc.Join(context.Background(), tenant, "STATICODE1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(context.Background(), f.landlord.ID, f.lease.ID, tenant.ID))

	err = f.svc.Leave(context.Background(), tenant.ID, f.lease.ID)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestInviteRequiresManagingLandlord(t *testing.T) {
	f := newTenantFixture(7 * 24 * time.Hour)

	err := f.svc.Invite(context.Background(), uuid.New(), f.lease.ID, "tom@example.com")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
}
