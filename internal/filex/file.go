// Package filex contains small filesystem helpers for the client's data
// directory: where the SQLite store, the device secret and the log live.
package filex

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/colisroute/colis/internal/common"
)

// AppDirName is the directory created under the user config dir.
const AppDirName = "colis"

// EnsureDir creates dir (and parents) if needed and returns its absolute path.
// A relative dir is resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DefaultDataDir returns <user config dir>/colis, falling back to ./.colis
// when the platform has no config dir (e.g. $HOME unset in containers).
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + AppDirName
	}
	return filepath.Join(base, AppDirName)
}

// ReadOrCreateSecret returns the hex-decoded secret stored at path. When the
// file does not exist a new random secret of size bytes is written with 0600
// permissions. It plays the role of the platform keychain for secure storage.
func ReadOrCreateSecret(path string, size int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		secret, decErr := hex.DecodeString(strings.TrimSpace(string(data)))
		if decErr != nil {
			return nil, fmt.Errorf("decode secret %s: %w", path, decErr)
		}
		return secret, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read secret %s: %w", path, err)
	}

	secret := common.GenerateRandByteArray(size)
	if err := os.WriteFile(path, []byte(hex.EncodeToString(secret)), 0o600); err != nil {
		return nil, fmt.Errorf("write secret %s: %w", path, err)
	}
	return secret, nil
}
