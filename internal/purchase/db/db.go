// Package db stores completed ticket passes in SQLite via bun. This is
// purchase history only; the account registry keeps its own files.
package db

import (
	"context"

	"github.com/uptrace/bun"

	"parkpass/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// EnsureSchema creates the ticket_passes table if it is missing.
func (d *DB) EnsureSchema(ctx context.Context) error {
	_, err := d.Bun.NewCreateTable().
		Model((*models.TicketPass)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// CreatePass inserts a new pass.
func (d *DB) CreatePass(pass models.TicketPass) error {
	_, err := d.Bun.NewInsert().Model(&pass).Exec(context.Background())
	return err
}

// GetPassByID fetches one pass by its ID.
func (d *DB) GetPassByID(passID string) (*models.TicketPass, error) {
	var pass models.TicketPass
	err := d.Bun.NewSelect().
		Model(&pass).
		Where("pass_id = ?", passID).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &pass, nil
}

// GetPassesByAccount fetches every pass bought by an account, newest
// first.
func (d *DB) GetPassesByAccount(accountID int64) ([]models.TicketPass, error) {
	var passes []models.TicketPass
	err := d.Bun.NewSelect().
		Model(&passes).
		Where("account_id = ?", accountID).
		Order("issued_at DESC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return passes, nil
}

// DeletePassesByAccount removes all passes for an account. Used when
// the account itself is deleted.
func (d *DB) DeletePassesByAccount(accountID int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.TicketPass)(nil)).
		Where("account_id = ?", accountID).
		Exec(context.Background())
	return err
}
