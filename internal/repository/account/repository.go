package account

import "context"

// Repository runs the anonymous-to-registered migration.
type Repository interface {
	// MigrateAnonymous moves everything owned by the anonymous user to
	// the target user in one transaction: orders and addresses are
	// repointed, carts and wishlists are merged line-by-line, and the
	// anonymous user row is deleted. Any failure rolls the whole
	// migration back, leaving the anonymous user's data untouched.
	MigrateAnonymous(ctx context.Context, anonUserID, targetUserID string) error
}
