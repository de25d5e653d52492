package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// Service defines operations that record and read ledger events.
type Service interface {
	RecordEvent(ctx context.Context, input RecordLedgerEventInput) (*models.LedgerEvent, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.LedgerEvent, error)
	HasEvent(ctx context.Context, invoiceID uuid.UUID, eventType enums.LedgerEventType) (bool, error)
}

type service struct {
	repo Repository
}

// RecordLedgerEventInput captures the immutable data a ledger event requires.
type RecordLedgerEventInput struct {
	InvoiceID   uuid.UUID             `json:"invoice_id"`
	MerchantID  uuid.UUID             `json:"merchant_id"`
	Type        enums.LedgerEventType `json:"type"`
	AmountCents int64                 `json:"amount_cents"`
	Metadata    types.Metadata        `json:"metadata"`
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) RecordEvent(ctx context.Context, input RecordLedgerEventInput) (*models.LedgerEvent, error) {
	if input.InvoiceID == uuid.Nil {
		return nil, fmt.Errorf("invoice id is required")
	}
	if input.MerchantID == uuid.Nil {
		return nil, fmt.Errorf("merchant id is required")
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid ledger event type %q", input.Type)
	}

	event := &models.LedgerEvent{
		InvoiceID:   input.InvoiceID,
		MerchantID:  input.MerchantID,
		Type:        input.Type,
		AmountCents: input.AmountCents,
		Metadata:    input.Metadata,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.LedgerEvent, error) {
	if invoiceID == uuid.Nil {
		return nil, fmt.Errorf("invoice id is required")
	}
	return s.repo.ListByInvoiceID(ctx, invoiceID)
}

func (s *service) HasEvent(ctx context.Context, invoiceID uuid.UUID, eventType enums.LedgerEventType) (bool, error) {
	if invoiceID == uuid.Nil {
		return false, fmt.Errorf("invoice id is required")
	}
	if !eventType.IsValid() {
		return false, fmt.Errorf("invalid ledger event type %q", eventType)
	}

	events, err := s.repo.ListByInvoiceID(ctx, invoiceID)
	if err != nil {
		return false, err
	}
	for _, event := range events {
		if event.Type == eventType {
			return true, nil
		}
	}
	return false, nil
}
