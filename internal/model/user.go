package model

import "time"

type User struct {
	ID                 int       `db:"id" json:"id"`
	Email              string    `db:"email" json:"email"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	Name               string    `db:"name" json:"name"`
	StripeCustomerID   *string   `db:"stripe_customer_id" json:"stripe_customer_id,omitempty"`
	SubscriptionStatus string    `db:"subscription_status" json:"subscription_status"`
	SubscriptionTier   string    `db:"subscription_tier" json:"subscription_tier"`
	IsAdmin            bool      `db:"is_admin" json:"is_admin"`
	IsFounder          bool      `db:"is_founder" json:"is_founder"`
	BillingExempt      bool      `db:"billing_exempt" json:"billing_exempt"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
