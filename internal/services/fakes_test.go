package services

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
)

/* ------------------------------------------------------------------
   In-memory repository fakes
------------------------------------------------------------------ */

type fakeUserRepo struct {
	users     map[uuid.UUID]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *models.Session) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetWithUser(ctx context.Context, id string) (*models.Session, *models.User, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil, pgx.ErrNoRows
	}
	return s, nil, nil
}

func (f *fakeSessionRepo) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	if s, ok := f.sessions[id]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for id, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

type fakePropertyRepo struct {
	properties map[uuid.UUID]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: map[uuid.UUID]*models.Property{}}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *models.Property) error {
	f.properties[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok || p.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakePropertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.properties {
		if p.LandlordID == landlordID && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *models.Property) error {
	old, ok := f.properties[p.ID]
	if !ok || old.IsDeleted {
		return pgx.ErrNoRows
	}
	f.properties[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := f.properties[id]
	if !ok || p.IsDeleted {
		return pgx.ErrNoRows
	}
	p.IsDeleted = true
	return nil
}

type fakeLeaseRepo struct {
	leases    map[uuid.UUID]*models.Lease
	landlords map[uuid.UUID]uuid.UUID // lease ID -> landlord ID
}

func newFakeLeaseRepo() *fakeLeaseRepo {
	return &fakeLeaseRepo{
		leases:    map[uuid.UUID]*models.Lease{},
		landlords: map[uuid.UUID]uuid.UUID{},
	}
}

func (f *fakeLeaseRepo) add(l *models.Lease, landlordID uuid.UUID) {
	f.leases[l.ID] = l
	f.landlords[l.ID] = landlordID
}

func (f *fakeLeaseRepo) Create(ctx context.Context, l *models.Lease) error {
	f.leases[l.ID] = l
	return nil
}

func (f *fakeLeaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	l, ok := f.leases[id]
	if !ok || l.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return l, nil
}

func (f *fakeLeaseRepo) GetByInviteCode(ctx context.Context, code string) (*models.Lease, error) {
	for _, l := range f.leases {
		if l.InviteCode == code && !l.IsDeleted {
			return l, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLeaseRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Lease, error) {
	var out []*models.Lease
	for id, l := range f.leases {
		if !l.IsDeleted && f.landlords[id] == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) LandlordID(ctx context.Context, leaseID uuid.UUID) (uuid.UUID, error) {
	id, ok := f.landlords[leaseID]
	if !ok {
		return uuid.Nil, pgx.ErrNoRows
	}
	return id, nil
}

func (f *fakeLeaseRepo) Update(ctx context.Context, l *models.Lease) error {
	if _, ok := f.leases[l.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.leases[l.ID] = l
	return nil
}

func (f *fakeLeaseRepo) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	l, ok := f.leases[id]
	if !ok || l.IsDeleted {
		return pgx.ErrNoRows
	}
	l.Description = description
	return nil
}

func (f *fakeLeaseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	l, ok := f.leases[id]
	if !ok || l.IsDeleted {
		return pgx.ErrNoRows
	}
	l.IsDeleted = true
	return nil
}

type fakeLeaseTenantRepo struct {
	memberships map[uuid.UUID]*models.LeaseTenant
	landlords   map[uuid.UUID]uuid.UUID // lease ID -> landlord ID
}

func newFakeLeaseTenantRepo() *fakeLeaseTenantRepo {
	return &fakeLeaseTenantRepo{
		memberships: map[uuid.UUID]*models.LeaseTenant{},
		landlords:   map[uuid.UUID]uuid.UUID{},
	}
}

func (f *fakeLeaseTenantRepo) Add(ctx context.Context, lt *models.LeaseTenant) error {
	f.memberships[lt.ID] = lt
	return nil
}

func (f *fakeLeaseTenantRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.LeaseTenant, error) {
	var out []*models.LeaseTenant
	for _, m := range f.memberships {
		if m.LeaseID == leaseID && !m.IsDeleted {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLeaseTenantRepo) IsTenant(ctx context.Context, leaseID, tenantID uuid.UUID) (bool, error) {
	for _, m := range f.memberships {
		if m.LeaseID == leaseID && m.TenantID == tenantID && !m.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaseTenantRepo) HasTenantWithEmail(ctx context.Context, leaseID uuid.UUID, email string) (bool, error) {
	for _, m := range f.memberships {
		if m.LeaseID == leaseID && !m.IsDeleted && m.Tenant != nil && m.Tenant.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaseTenantRepo) IsLandlordTenantPair(ctx context.Context, landlordID, tenantID uuid.UUID) (bool, error) {
	for _, m := range f.memberships {
		if m.TenantID == tenantID && !m.IsDeleted && f.landlords[m.LeaseID] == landlordID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaseTenantRepo) Leave(ctx context.Context, leaseID, tenantID uuid.UUID) error {
	for _, m := range f.memberships {
		if m.LeaseID == leaseID && m.TenantID == tenantID && !m.IsDeleted {
			m.IsDeleted = true
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeLeaseTenantRepo) Remove(ctx context.Context, leaseTenantID uuid.UUID) error {
	m, ok := f.memberships[leaseTenantID]
	if !ok || m.IsDeleted {
		return pgx.ErrNoRows
	}
	m.IsDeleted = true
	return nil
}

type fakeAnnouncementRepo struct {
	announcements map[uuid.UUID]*models.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: map[uuid.UUID]*models.Announcement{}}
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a *models.Announcement) error {
	f.announcements[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	a, ok := f.announcements[id]
	if !ok || a.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAnnouncementRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Announcement, error) {
	var out []*models.Announcement
	for _, a := range f.announcements {
		if a.LeaseID == leaseID && !a.IsDeleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) Update(ctx context.Context, a *models.Announcement) error {
	old, ok := f.announcements[a.ID]
	if !ok || old.IsDeleted {
		return pgx.ErrNoRows
	}
	f.announcements[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	a, ok := f.announcements[id]
	if !ok || a.IsDeleted {
		return pgx.ErrNoRows
	}
	a.IsDeleted = true
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*models.Payment

	// reminders, when set, receives the rows CreateWithReminders would
	// commit alongside the payment.
	reminders *fakeReminderRepo
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID]*models.Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) CreateWithReminders(ctx context.Context, p *models.Payment, reminders []*models.Reminder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.payments[p.ID] = p
	if f.reminders != nil {
		for _, rem := range reminders {
			f.reminders.reminders[rem.ID] = rem
		}
	}
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok || p.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakePaymentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.LeaseID == leaseID && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	old, ok := f.payments[p.ID]
	if !ok || old.IsDeleted {
		return pgx.ErrNoRows
	}
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := f.payments[id]
	if !ok || p.IsDeleted {
		return pgx.ErrNoRows
	}
	p.IsDeleted = true
	return nil
}

type fakeReminderRepo struct {
	reminders map[uuid.UUID]*models.Reminder
	due       []*repositories.DueReminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: map[uuid.UUID]*models.Reminder{}}
}

func (f *fakeReminderRepo) Create(ctx context.Context, r *models.Reminder) error {
	f.reminders[r.ID] = r
	return nil
}

func (f *fakeReminderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	r, ok := f.reminders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r, nil
}

func (f *fakeReminderRepo) ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*models.Reminder, error) {
	var out []*models.Reminder
	for _, r := range f.reminders {
		if r.PaymentID == paymentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) ExistsForPayment(ctx context.Context, paymentID uuid.UUID, daysBefore int) (bool, error) {
	for _, r := range f.reminders {
		if r.PaymentID == paymentID && r.DaysBefore == daysBefore {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReminderRepo) Update(ctx context.Context, r *models.Reminder) error {
	if _, ok := f.reminders[r.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.reminders[r.ID] = r
	return nil
}

func (f *fakeReminderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.reminders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderRepo) DueToday(ctx context.Context) ([]*repositories.DueReminder, error) {
	return f.due, nil
}

type fakeDocumentRepo struct {
	documents map[uuid.UUID]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: map[uuid.UUID]*models.Document{}}
}

func (f *fakeDocumentRepo) Create(ctx context.Context, d *models.Document) error {
	f.documents[d.ID] = d
	return nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	d, ok := f.documents[id]
	if !ok || d.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (f *fakeDocumentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range f.documents {
		if d.LeaseID == leaseID && !d.IsDeleted {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) CountByAuthor(ctx context.Context, leaseID, authorID uuid.UUID) (int, error) {
	var n int
	for _, d := range f.documents {
		if d.LeaseID == leaseID && d.AuthorID == authorID && !d.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeDocumentRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	d, ok := f.documents[id]
	if !ok || d.IsDeleted {
		return pgx.ErrNoRows
	}
	d.Name = name
	return nil
}

func (f *fakeDocumentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	d, ok := f.documents[id]
	if !ok || d.IsDeleted {
		return pgx.ErrNoRows
	}
	d.IsDeleted = true
	return nil
}

type fakeMessageRepo struct {
	messages map[uuid.UUID]*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[uuid.UUID]*models.Message{}}
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *models.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	f.messages[m.ID] = m
	return nil
}

func (f *fakeMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	m, ok := f.messages[id]
	if !ok || m.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (f *fakeMessageRepo) ListBetween(ctx context.Context, userA, userB uuid.UUID, from *uuid.UUID, max int) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.messages {
		if m.IsDeleted {
			continue
		}
		if (m.AuthorID == userA && m.RecipientID == userB) || (m.AuthorID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > max {
		out = out[:max]
	}
	return out, nil
}

func (f *fakeMessageRepo) Channels(ctx context.Context, userID uuid.UUID) ([]*models.MessageChannel, error) {
	last := map[uuid.UUID]time.Time{}
	for _, m := range f.messages {
		if m.IsDeleted {
			continue
		}
		var other uuid.UUID
		switch userID {
		case m.AuthorID:
			other = m.RecipientID
		case m.RecipientID:
			other = m.AuthorID
		default:
			continue
		}
		if m.CreatedAt.After(last[other]) {
			last[other] = m.CreatedAt
		}
	}

	var out []*models.MessageChannel
	for id, ts := range last {
		out = append(out, &models.MessageChannel{ID: id, LastMessaged: ts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessaged.After(out[j].LastMessaged) })
	return out, nil
}

func (f *fakeMessageRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	m, ok := f.messages[id]
	if !ok || m.IsDeleted {
		return pgx.ErrNoRows
	}
	m.IsDeleted = true
	return nil
}

/* ------------------------------------------------------------------
   Infrastructure fakes
------------------------------------------------------------------ */

type sentEmail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlContent string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{To: toEmail, Subject: subject})
	return nil
}

type fakeBlobStore struct {
	blobs map[string]string // key -> content type
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string]string{}}
}

func (f *fakeBlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	f.blobs[key] = contentType
	return nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

func (f *fakeBlobStore) TemporaryURL(ctx context.Context, key string) (string, error) {
	return "https://blobs.test/" + key + "?sig=abc", nil
}
