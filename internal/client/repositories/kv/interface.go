package kv

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(r Repository) error) error
}
