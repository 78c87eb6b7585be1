package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	walletDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/wallet"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// BalanceDTO is the response representation of a wallet balance. All three
// figures are zero (never null) when the user's ledger is empty.
type BalanceDTO struct {
	AvailableCents int64  `json:"available_cents"`
	PendingCents   int64  `json:"pending_cents"`
	TotalCents     int64  `json:"total_cents"`
	Currency       string `json:"currency"`
}

// LedgerEntryDTO is the response representation of a wallet transaction.
type LedgerEntryDTO struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	Reference   string    `json:"reference"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WalletService derives balances from the ledger and records entries.
type WalletService struct {
	ledger walletDomain.LedgerRepository
	logger *zap.Logger
}

// NewWalletService creates a new WalletService.
func NewWalletService(ledger walletDomain.LedgerRepository, logger *zap.Logger) *WalletService {
	return &WalletService{ledger: ledger, logger: logger}
}

// GetBalance returns the user's derived balances: available over settled
// entries, pending over held entries, total = available + pending.
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceDTO, error) {
	balance, err := s.ledger.BalanceFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive balance: %w", err)
	}

	return &BalanceDTO{
		AvailableCents: balance.AvailableCents,
		PendingCents:   balance.PendingCents,
		TotalCents:     balance.TotalCents(),
		Currency:       domain.CurrencyMYR,
	}, nil
}

// GetTransactions returns the user's ledger entries, newest first.
func (s *WalletService) GetTransactions(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[LedgerEntryDTO], error) {
	entries, total, err := s.ledger.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	dtos := make([]LedgerEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = LedgerEntryDTO{
			ID:          e.ID(),
			AmountCents: e.AmountCents(),
			Status:      string(e.Status()),
			Reference:   e.Reference(),
			Description: e.Description(),
			CreatedAt:   e.CreatedAt(),
		}
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// RecordEntry appends a ledger entry for the user. amountCents must be
// non-zero; positive amounts credit the wallet, negative amounts debit it.
func (s *WalletService) RecordEntry(ctx context.Context, userID uuid.UUID, amountCents int64, status walletDomain.EntryStatus, reference, description string) error {
	entry, err := walletDomain.NewLedgerEntry(userID, amountCents, status, reference, description)
	if err != nil {
		return err
	}

	if err := s.ledger.Append(ctx, entry); err != nil {
		return err
	}

	s.logger.Info("ledger entry recorded",
		zap.String("user_id", userID.String()),
		zap.Int64("amount_cents", amountCents),
		zap.String("status", string(status)),
	)
	return nil
}
