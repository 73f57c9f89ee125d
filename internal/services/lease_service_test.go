package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type leaseFixture struct {
	svc        *LeaseService
	leases     *fakeLeaseRepo
	properties *fakePropertyRepo
	tenants    *fakeLeaseTenantRepo
	landlord   *models.User
	property   *models.Property
}

func newLeaseFixture() *leaseFixture {
	leases := newFakeLeaseRepo()
	properties := newFakePropertyRepo()
	tenants := newFakeLeaseTenantRepo()

	landlord := &models.User{ID: uuid.New(), Name: "Lana", UserType: models.UserTypeLandlord}
	property := &models.Property{
		ID:         uuid.New(),
		LandlordID: landlord.ID,
		Name:       "Rose Cottage",
		Address:    "1 High Street",
	}
	_ = properties.Create(context.Background(), property)

	return &leaseFixture{
		svc:        NewLeaseService(leases, properties, tenants),
		leases:     leases,
		properties: properties,
		tenants:    tenants,
		landlord:   landlord,
		property:   property,
	}
}

func (f *leaseFixture) createLease(t *testing.T) *models.Lease {
	t.Helper()
	lease, err := f.svc.Create(context.Background(), f.landlord.ID, &dtos.CreateLeaseRequest{
		PropertyID: f.property.ID.String(),
		StartDate:  "2026-01-01",
		EndDate:    "2026-12-31",
		TotalRent:  1250.50,
	})
	require.NoError(t, err)
	// The fake keys landlord ownership separately from the row.
	f.leases.landlords[lease.ID] = f.landlord.ID
	f.tenants.landlords[lease.ID] = f.landlord.ID
	return lease
}

func TestCreateLeaseGeneratesInviteCode(t *testing.T) {
	f := newLeaseFixture()
	lease := f.createLease(t)

	assert.Len(t, lease.InviteCode, leaseInviteCodeChars)
	assert.Equal(t, "Rose Cottage", lease.PropertyName)
	assert.Equal(t, "1 High Street", lease.PropertyAddress)
	assert.True(t, lease.EndDate.After(lease.StartDate))
}

func TestCreateLeaseOnAnotherLandlordsProperty(t *testing.T) {
	f := newLeaseFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), &dtos.CreateLeaseRequest{
		PropertyID: f.property.ID.String(),
		StartDate:  "2026-01-01",
		EndDate:    "2026-12-31",
		TotalRent:  900,
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.StatusCode)
}

func TestCreateLeaseRejectsInvertedDates(t *testing.T) {
	f := newLeaseFixture()

	_, err := f.svc.Create(context.Background(), f.landlord.ID, &dtos.CreateLeaseRequest{
		PropertyID: f.property.ID.String(),
		StartDate:  "2026-12-31",
		EndDate:    "2026-01-01",
		TotalRent:  900,
	})
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "End date must be after start date", appErr.Message)
}

func TestGetLeaseHidesInviteCodeFromTenants(t *testing.T) {
	f := newLeaseFixture()
	lease := f.createLease(t)

	tenant := &models.User{ID: uuid.New(), UserType: models.UserTypeTenant}
	_ = f.tenants.Add(context.Background(), &models.LeaseTenant{
		ID:       uuid.New(),
		LeaseID:  lease.ID,
		TenantID: tenant.ID,
	})

	asLandlord, err := f.svc.Get(context.Background(), f.landlord, lease.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, asLandlord.InviteCode)

	asTenant, err := f.svc.Get(context.Background(), tenant, lease.ID)
	require.NoError(t, err)
	assert.Empty(t, asTenant.InviteCode)
}

func TestGetLeaseHiddenFromStrangers(t *testing.T) {
	f := newLeaseFixture()
	lease := f.createLease(t)
	stranger := &models.User{ID: uuid.New(), UserType: models.UserTypeTenant}

	_, err := f.svc.Get(context.Background(), stranger, lease.ID)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestUpdateLeasePersistsAllFields(t *testing.T) {
	f := newLeaseFixture()
	lease := f.createLease(t)

	_, err := f.svc.Update(context.Background(), f.landlord.ID, lease.ID, &dtos.UpdateLeaseRequest{
		StartDate:   "2026-02-01",
		EndDate:     "2027-01-31",
		TotalRent:   1400,
		Description: "Renewed for another year",
	})
	require.NoError(t, err)

	// Read back through the repository: every field, including the
	// description, must survive the write.
	got, err := f.leases.GetByID(context.Background(), lease.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renewed for another year", got.Description)
	assert.Equal(t, 1400.0, got.TotalRent)
	assert.Equal(t, "2026-02-01", got.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2027-01-31", got.EndDate.Format("2006-01-02"))
}

func TestUpdateLeaseDescriptionSanitized(t *testing.T) {
	f := newLeaseFixture()
	lease := f.createLease(t)

	err := f.svc.UpdateDescription(context.Background(), f.landlord.ID, lease.ID, `Cosy <script>alert(1)</script>flat`)
	require.NoError(t, err)

	got, err := f.leases.GetByID(context.Background(), lease.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.Description, "<script>")
	assert.Contains(t, got.Description, "Cosy")
}

func TestDeleteLeaseTwiceIsNotFound(t *testing.T) {
	f := newLeaseFixture()
	lease := f.createLease(t)

	require.NoError(t, f.svc.Delete(context.Background(), f.landlord.ID, lease.ID))

	err := f.svc.Delete(context.Background(), f.landlord.ID, lease.ID)
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
