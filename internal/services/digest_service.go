package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// DigestService sends the daily payment reminder digest: one email per
// tenant listing every payment whose reminder fires today.
type DigestService interface {
	SendDaily(ctx context.Context) error
}

type digestService struct {
	reminderRepo repositories.ReminderRepository
	mailer       Mailer
}

func NewDigestService(reminderRepo repositories.ReminderRepository, mailer Mailer) DigestService {
	return &digestService{
		reminderRepo: reminderRepo,
		mailer:       mailer,
	}
}

func (s *digestService) SendDaily(ctx context.Context) error {
	due, err := s.reminderRepo.DueToday(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to collect due reminders")
		return err
	}
	if len(due) == 0 {
		utils.Logger.Info("No payment reminders due today")
		return nil
	}

	byTenant := make(map[string][]*repositories.DueReminder)
	var order []string
	for _, d := range due {
		if _, seen := byTenant[d.TenantEmail]; !seen {
			order = append(order, d.TenantEmail)
		}
		byTenant[d.TenantEmail] = append(byTenant[d.TenantEmail], d)
	}

	var failed int
	for _, email := range order {
		reminders := byTenant[email]
		subject := "Upcoming payment reminders"
		plain, html := buildDigest(reminders)
		if err := s.mailer.Send(ctx, reminders[0].TenantName, email, subject, plain, html); err != nil {
			failed++
			utils.Logger.WithError(err).Warnf("Failed to send reminder digest to %s", email)
		}
	}

	utils.Logger.Infof("Reminder digest: %d tenants, %d failures", len(order), failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d digest emails failed", utils.ErrExternalServiceFailure, failed)
	}
	return nil
}

func buildDigest(reminders []*repositories.DueReminder) (plain string, html string) {
	var pb, hb strings.Builder

	pb.WriteString("You have upcoming payments:\n\n")
	hb.WriteString("<p>You have upcoming payments:</p><ul>")
	for _, r := range reminders {
		due := utils.FormatTimeToDateString(r.DueDate.Format(time.RFC3339))
		line := fmt.Sprintf("%s: %.2f due %s", r.PaymentName, r.Amount, due)
		if r.PaymentDescription != "" {
			line += " (" + r.PaymentDescription + ")"
		}
		pb.WriteString("- " + line + "\n")
		hb.WriteString("<li>" + line + "</li>")
	}
	hb.WriteString("</ul>")

	return pb.String(), hb.String()
}
