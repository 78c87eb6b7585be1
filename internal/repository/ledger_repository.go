package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	walletDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/wallet"
)

// LedgerEntryModel is the GORM model for the wallet_ledger table.
type LedgerEntryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	AmountCents int64     `gorm:"not null"`
	Status      string    `gorm:"not null;size:20;index"`
	Reference   string    `gorm:"size:100;index"`
	Description string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (LedgerEntryModel) TableName() string {
	return "wallet_ledger"
}

// GormLedgerRepository is the GORM-based implementation of LedgerRepository.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists a new ledger entry.
func (r *GormLedgerRepository) Append(ctx context.Context, entry *walletDomain.LedgerEntry) error {
	model := toLedgerModel(entry)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// BalanceFor derives the user's balances from the ledger. COALESCE keeps an
// empty ledger at zero rather than NULL.
func (r *GormLedgerRepository) BalanceFor(ctx context.Context, userID uuid.UUID) (walletDomain.Balance, error) {
	var balance walletDomain.Balance

	err := r.db.WithContext(ctx).Model(&LedgerEntryModel{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ? AND status = ?", userID, string(walletDomain.StatusSettled)).
		Scan(&balance.AvailableCents).Error
	if err != nil {
		return walletDomain.Balance{}, fmt.Errorf("failed to sum settled entries: %w", err)
	}

	err = r.db.WithContext(ctx).Model(&LedgerEntryModel{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ? AND status = ?", userID, string(walletDomain.StatusHeld)).
		Scan(&balance.PendingCents).Error
	if err != nil {
		return walletDomain.Balance{}, fmt.Errorf("failed to sum held entries: %w", err)
	}

	return balance, nil
}

// FindByUserID retrieves a user's ledger entries with pagination, newest first.
func (r *GormLedgerRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*walletDomain.LedgerEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&LedgerEntryModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var models []LedgerEntryModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find ledger entries: %w", err)
	}

	entries := make([]*walletDomain.LedgerEntry, len(models))
	for i, m := range models {
		entries[i] = toLedgerDomain(&m)
	}
	return entries, total, nil
}

func toLedgerModel(e *walletDomain.LedgerEntry) LedgerEntryModel {
	return LedgerEntryModel{
		ID:          e.ID(),
		UserID:      e.UserID(),
		AmountCents: e.AmountCents(),
		Status:      string(e.Status()),
		Reference:   e.Reference(),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt(),
	}
}

func toLedgerDomain(m *LedgerEntryModel) *walletDomain.LedgerEntry {
	return walletDomain.ReconstructEntry(
		m.ID,
		m.UserID,
		m.AmountCents,
		walletDomain.EntryStatus(m.Status),
		m.Reference,
		m.Description,
		m.CreatedAt,
	)
}
