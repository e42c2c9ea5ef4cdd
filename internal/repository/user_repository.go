package repository

import (
	"context"
	"database/sql"

	"github.com/coldpilot/coldpilot-backend/internal/model"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, subscription_status, subscription_tier, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name).
		Scan(&u.ID, &u.SubscriptionStatus, &u.SubscriptionTier, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, name, stripe_customer_id,
			   subscription_status, subscription_tier, is_admin, is_founder,
			   billing_exempt, created_at, updated_at
		FROM users WHERE ` + where
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.StripeCustomerID,
		&u.SubscriptionStatus, &u.SubscriptionTier, &u.IsAdmin, &u.IsFounder,
		&u.BillingExempt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
