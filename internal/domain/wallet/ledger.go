package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"
)

// EntryStatus is the settlement state of a ledger entry.
type EntryStatus string

const (
	// StatusHeld marks funds reserved but not yet settled (pending balance).
	StatusHeld EntryStatus = "held"
	// StatusSettled marks funds that count toward the available balance.
	StatusSettled EntryStatus = "settled"
)

// IsValid returns true if the status is recognized.
func (s EntryStatus) IsValid() bool {
	return s == StatusHeld || s == StatusSettled
}

// LedgerEntry is a single append-only wallet transaction. Balances are
// always derived by summing entries; no cached balance column exists.
type LedgerEntry struct {
	id          uuid.UUID
	userID      uuid.UUID
	amountCents int64
	status      EntryStatus
	reference   string
	description string
	createdAt   time.Time
}

// NewLedgerEntry creates a ledger entry. amountCents is signed: credits are
// positive, debits negative.
func NewLedgerEntry(userID uuid.UUID, amountCents int64, status EntryStatus, reference, description string) (*LedgerEntry, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if amountCents == 0 {
		return nil, domain.NewValidationError("amount cannot be zero")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("invalid ledger entry status: " + string(status))
	}

	return &LedgerEntry{
		id:          uuid.New(),
		userID:      userID,
		amountCents: amountCents,
		status:      status,
		reference:   reference,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructEntry rebuilds a LedgerEntry from persistence data.
func ReconstructEntry(id, userID uuid.UUID, amountCents int64, status EntryStatus, reference, description string, createdAt time.Time) *LedgerEntry {
	return &LedgerEntry{
		id:          id,
		userID:      userID,
		amountCents: amountCents,
		status:      status,
		reference:   reference,
		description: description,
		createdAt:   createdAt,
	}
}

func (e *LedgerEntry) ID() uuid.UUID        { return e.id }
func (e *LedgerEntry) UserID() uuid.UUID    { return e.userID }
func (e *LedgerEntry) AmountCents() int64   { return e.amountCents }
func (e *LedgerEntry) Status() EntryStatus  { return e.status }
func (e *LedgerEntry) Reference() string    { return e.reference }
func (e *LedgerEntry) Description() string  { return e.description }
func (e *LedgerEntry) CreatedAt() time.Time { return e.createdAt }

// Balance aggregates a user's ledger. Available and pending default to zero
// when no entries exist.
type Balance struct {
	AvailableCents int64
	PendingCents   int64
}

// TotalCents is the sum of available and pending funds.
func (b Balance) TotalCents() int64 {
	return b.AvailableCents + b.PendingCents
}

// LedgerRepository defines persistence operations for wallet ledger entries.
type LedgerRepository interface {
	// Append persists a new ledger entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *LedgerEntry) error

	// BalanceFor sums the user's ledger: available over settled entries,
	// pending over held entries. Both are zero for an empty ledger.
	BalanceFor(ctx context.Context, userID uuid.UUID) (Balance, error)

	// FindByUserID retrieves a user's entries with pagination, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*LedgerEntry, int64, error)
}
