package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

const sessionIDLength = 48

type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// SignUp creates the account and immediately opens a session for it.
func (s *AuthService) SignUp(ctx context.Context, req *dtos.SignUpRequest) (*models.User, *models.Session, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, utils.ConflictError("An account with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		UserType:     req.UserType,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the EmailExists check and
		// hit the unique constraint instead.
		if isUniqueViolation(err) {
			return nil, nil, utils.ConflictError("An account with this email already exists")
		}
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Login verifies the credentials and opens a session. The same
// invalid_credentials response covers unknown email and wrong
// password.
func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*models.User, *models.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, invalidCredentialsError()
		}
		return nil, nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, nil, invalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout destroys the session. A stale or already-deleted session is
// still a successful logout.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}

func (s *AuthService) createSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	session := &models.Session{
		ID:        utils.RandomString(sessionIDLength),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func invalidCredentialsError() *utils.AppError {
	return utils.NewAppError(
		http.StatusUnauthorized,
		utils.ErrCodeInvalidCredentials,
		"Invalid email or password",
		utils.ErrInvalidCredentials,
	)
}
