package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/colisroute/colis/internal/client/repositories/kv"
	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/cryptox"
	"github.com/colisroute/colis/internal/filex"
	"github.com/colisroute/colis/internal/logging"
)

type Mode string

const (
	ModePlain  Mode = "plain"
	ModeSecure Mode = "secure"
	// ModeAuto picks secure storage when a device secret can be established
	// and falls back to plain otherwise.
	ModeAuto Mode = "auto"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePlain, ModeSecure, ModeAuto:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown storage mode %q (want plain, secure or auto)", s)
	}
}

const (
	saltKey        = "_session_salt"
	saltSize       = 16
	deviceSecret   = "device.key"
	deviceSecretSz = 32
)

type plainCodec struct{}

func (plainCodec) encode(b []byte) ([]byte, error) { return b, nil }
func (plainCodec) decode(b []byte) ([]byte, error) { return b, nil }

type sealCodec struct{ key []byte }

func (c sealCodec) encode(b []byte) ([]byte, error) { return cryptox.Seal(b, c.key) }
func (c sealCodec) decode(b []byte) ([]byte, error) { return cryptox.Open(b, c.key) }

// NewPlainStore stores session values unencrypted.
func NewPlainStore(repo kv.Repository) *KVStore {
	return &KVStore{repo: repo, codec: plainCodec{}}
}

// NewSecureStore seals every value with key (cryptox.KeySize bytes).
func NewSecureStore(repo kv.Repository, key []byte) *KVStore {
	return &KVStore{repo: repo, codec: sealCodec{key: key}}
}

// SecureOptions locate the secret secure storage derives its key from.
// Passphrase wins over the device secret file when set.
type SecureOptions struct {
	Passphrase string
	DataDir    string
}

// Open builds the Store for mode and reports the mode actually used.
func Open(ctx context.Context, mode Mode, repo kv.Repository, opts SecureOptions, log logging.Logger) (Store, Mode, error) {
	if mode == ModePlain {
		return NewPlainStore(repo), ModePlain, nil
	}

	key, err := secureKey(ctx, repo, opts)
	if err != nil {
		if mode == ModeSecure {
			return nil, "", fmt.Errorf("secure storage unavailable: %w", err)
		}
		log.Warn(ctx, "secure storage unavailable, falling back to plain", "error", err)
		return NewPlainStore(repo), ModePlain, nil
	}

	return NewSecureStore(repo, key), ModeSecure, nil
}

func secureKey(ctx context.Context, repo kv.Repository, opts SecureOptions) ([]byte, error) {
	secret := []byte(opts.Passphrase)
	if opts.Passphrase == "" {
		if opts.DataDir == "" {
			return nil, fmt.Errorf("no passphrase and no data dir for a device secret")
		}
		var err error
		secret, err = filex.ReadOrCreateSecret(filepath.Join(opts.DataDir, deviceSecret), deviceSecretSz)
		if err != nil {
			return nil, err
		}
	}

	salt, err := repo.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		if err := repo.Set(ctx, saltKey, salt); err != nil {
			return nil, err
		}
	}

	return cryptox.DeriveKey(secret, salt), nil
}
