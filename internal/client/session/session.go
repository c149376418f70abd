package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/colisroute/colis/internal/client/repositories/kv"
	"github.com/colisroute/colis/internal/common"
)

// Storage keys.
const (
	KeyToken  = "auth_token"
	KeyRole   = "user_role"
	KeyUserID = "user_id"
)

var ErrCorrupt = errors.New("stored session cannot be read")

// Session is the persisted identity of the signed-in user. Role is kept as
// received; it is validated only when routing.
type Session struct {
	Token  string
	Role   common.Role
	UserID int64
}

type Store interface {
	// Get returns (nil, nil) when no token is stored.
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

type codec interface {
	encode(plain []byte) ([]byte, error)
	decode(stored []byte) ([]byte, error)
}

// KVStore is a Store on top of a kv.Repository.
type KVStore struct {
	repo  kv.Repository
	codec codec
}

func (s *KVStore) Get(ctx context.Context) (*Session, error) {
	token, err := s.read(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	role, err := s.read(ctx, KeyRole)
	if err != nil {
		return nil, err
	}

	sess := &Session{Token: token, Role: common.Role(role)}

	rawID, err := s.read(ctx, KeyUserID)
	if err != nil {
		return nil, err
	}
	if rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: user id %q", ErrCorrupt, rawID)
		}
		sess.UserID = id
	}

	return sess, nil
}

func (s *KVStore) read(ctx context.Context, key string) (string, error) {
	stored, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", nil
	}
	plain, err := s.codec.decode(stored)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return string(plain), nil
}

// Set replaces the stored session. All three keys are written in one transaction.
func (s *KVStore) Set(ctx context.Context, sess Session) error {
	values := map[string]string{
		KeyToken:  sess.Token,
		KeyRole:   string(sess.Role),
		KeyUserID: strconv.FormatInt(sess.UserID, 10),
	}

	return s.repo.InTx(ctx, func(r kv.Repository) error {
		for _, key := range []string{KeyToken, KeyRole, KeyUserID} {
			enc, err := s.codec.encode([]byte(values[key]))
			if err != nil {
				return fmt.Errorf("encode %s: %w", key, err)
			}
			if err := r.Set(ctx, key, enc); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *KVStore) Clear(ctx context.Context) error {
	return s.repo.InTx(ctx, func(r kv.Repository) error {
		for _, key := range []string{KeyToken, KeyRole, KeyUserID} {
			if err := r.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
