package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgconn"

	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

const cleanupRetryDelay = 3 * time.Second

// SessionCleanupService removes expired session rows each night.
type SessionCleanupService interface {
	CleanupDaily(ctx context.Context) error
}

type sessionCleanupService struct {
	sessionRepo repositories.SessionRepository
}

func NewSessionCleanupService(sessionRepo repositories.SessionRepository) SessionCleanupService {
	return &sessionCleanupService{sessionRepo: sessionRepo}
}

func (s *sessionCleanupService) CleanupDaily(ctx context.Context) error {
	deleted, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		// One retry on transient network errors.
		if errors.Is(err, io.EOF) || pgconn.SafeToRetry(err) ||
			strings.Contains(err.Error(), "connection was closed") {
			utils.Logger.WithError(err).Warn("Session cleanup hit transient DB error; retrying once")
			time.Sleep(cleanupRetryDelay)
			deleted, err = s.sessionRepo.DeleteExpired(ctx)
		}
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to cleanup expired sessions")
			return err
		}
	}

	utils.Logger.Infof("Daily session cleanup completed, %d sessions removed", deleted)
	return nil
}
