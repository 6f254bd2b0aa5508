package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"todomaster/internal/domain"
	"todomaster/internal/repository"
)

// EventUserCreated is the only identity-provider event type acted on; every
// other verified event is acknowledged and dropped.
const EventUserCreated = "user.created"

// WebhookEvent is the verified identity-provider event payload.
type WebhookEvent struct {
	Type string           `json:"type"`
	Data WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ID                    string         `json:"id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
}

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// WebhookService materializes local user rows from verified account
// lifecycle events.
type WebhookService interface {
	ProcessEvent(ctx context.Context, evt WebhookEvent) error
}

type webhookService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func NewWebhookService(users repository.UserRepository, log zerolog.Logger) WebhookService {
	return &webhookService{users: users, log: log}
}

func (s *webhookService) ProcessEvent(ctx context.Context, evt WebhookEvent) error {
	if evt.Type != EventUserCreated {
		return nil
	}

	var primary *EmailAddress
	for i := range evt.Data.EmailAddresses {
		if evt.Data.EmailAddresses[i].ID == evt.Data.PrimaryEmailAddressID {
			primary = &evt.Data.EmailAddresses[i]
			break
		}
	}
	if primary == nil {
		return ErrPrimaryEmailNotFound
	}

	user := &domain.User{
		ID:           evt.Data.ID,
		Email:        primary.EmailAddress,
		IsSubscribed: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The provider retries deliveries, so the same user.created event can
		// arrive more than once. The unique constraints on id and email turn
		// the replay into a duplicate-key error; the account already exists,
		// which is the state this event asked for.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Debug().Str("user_id", user.ID).Msg("user already provisioned, ignoring duplicate delivery")
			return nil
		}
		return fmt.Errorf("creating user %s: %w", user.ID, err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("provisioned user from webhook")
	return nil
}
