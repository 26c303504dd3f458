package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands out gorm sessions so usecases decide transaction scope
// while repositories stay stateless.
type Transactor interface {
	// DB returns a non-transactional session bound to ctx.
	DB(ctx context.Context) *gorm.DB

	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
