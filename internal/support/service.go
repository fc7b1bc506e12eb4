package support

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

// Service handles customer support tickets: storefront submissions and
// back-office triage.
type Service interface {
	Open(ctx context.Context, sessionID uuid.UUID, input OpenInput) (*models.SupportTicket, error)
	ListForSession(ctx context.Context, sessionID uuid.UUID) ([]models.SupportTicket, error)
	ListAll(ctx context.Context, status *enums.TicketStatus) ([]models.SupportTicket, error)
	Triage(ctx context.Context, id uuid.UUID, input TriageInput) (*models.SupportTicket, error)
}

// OpenInput is the validated ticket submission.
type OpenInput struct {
	Email   string
	Subject string
	Message string
}

// TriageInput mutates a ticket from the back office. Nil fields are left
// untouched.
type TriageInput struct {
	Status *enums.TicketStatus
	Reply  *string
}

type service struct {
	repo *Repository
}

// NewService builds the support service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "support repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Open(ctx context.Context, sessionID uuid.UUID, input OpenInput) (*models.SupportTicket, error) {
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if email == "" || subject == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email, subject and message are required")
	}

	ticket, err := s.repo.Create(ctx, &models.SupportTicket{
		SessionID: sessionID,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Status:    enums.TicketStatusOpen,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create support ticket")
	}
	return ticket, nil
}

func (s *service) ListForSession(ctx context.Context, sessionID uuid.UUID) ([]models.SupportTicket, error) {
	tickets, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list support tickets")
	}
	return tickets, nil
}

func (s *service) ListAll(ctx context.Context, status *enums.TicketStatus) ([]models.SupportTicket, error) {
	tickets, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list support tickets")
	}
	return tickets, nil
}

func (s *service) Triage(ctx context.Context, id uuid.UUID, input TriageInput) (*models.SupportTicket, error) {
	if input.Status == nil && input.Reply == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown ticket status %q", *input.Status))
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "support ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load support ticket")
	}

	if input.Reply != nil {
		ticket.Reply = input.Reply
		// A first reply moves an open ticket along automatically.
		if input.Status == nil && ticket.Status == enums.TicketStatusOpen {
			ticket.Status = enums.TicketStatusInProgress
		}
	}
	if input.Status != nil {
		ticket.Status = *input.Status
	}

	updated, err := s.repo.Update(ctx, ticket)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update support ticket")
	}
	return updated, nil
}
