package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	user := &User{ID: userID}
	err := r.db.ModelContext(ctx, user).WherePK().Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UserByEmail matches email case-insensitively.
func (r *Repository) UserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).Where(`lower("email") = lower(?)`, email).Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *Repository) UserByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"provider" = ?`, provider).
		Where(`"providerId" = ?`, providerID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by provider: %w", err)
	}

	return user, nil
}

func (r *Repository) AddUser(ctx context.Context, user *User) (*User, error) {
	_, err := r.db.ModelContext(ctx, user).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// UpdateUser updates the given columns only.
func (r *Repository) UpdateUser(ctx context.Context, user *User, columns ...string) (bool, error) {
	res, err := r.db.ModelContext(ctx, user).
		Column(columns...).
		WherePK().
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// AddPasswordReset replaces any pending reset for the same email.
func (r *Repository) AddPasswordReset(ctx context.Context, reset *PasswordReset) error {
	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.ModelContext(ctx, (*PasswordReset)(nil)).
			Where(`"email" = ?`, reset.Email).
			Where(`"usedAt" IS NULL`).
			Delete()
		if err != nil {
			return fmt.Errorf("failed to clear password resets: %w", err)
		}

		if _, err := tx.ModelContext(ctx, reset).Returning("*").Insert(); err != nil {
			return fmt.Errorf("failed to insert password reset: %w", err)
		}

		return nil
	})
}

// UsePasswordReset marks an unused, unexpired reset with tokenHash as used and
// returns it. It returns nil when no such reset exists.
func (r *Repository) UsePasswordReset(ctx context.Context, tokenHash string, now time.Time) (*PasswordReset, error) {
	reset := &PasswordReset{}
	res, err := r.db.ModelContext(ctx, reset).
		Set(`"usedAt" = ?`, now).
		Where(`"tokenHash" = ?`, tokenHash).
		Where(`"usedAt" IS NULL`).
		Where(`"expiresAt" > ?`, now).
		Returning("*").
		Update()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to use password reset: %w", err)
	}

	if res.RowsAffected() == 0 {
		return nil, nil
	}

	return reset, nil
}
