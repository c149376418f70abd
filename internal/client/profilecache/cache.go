// Package profilecache keeps fetched user profiles in the local key/value
// store under user_profile_{id}. Cache failures are logged and otherwise
// ignored: a broken cache only costs a refetch.
package profilecache

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/repositories/kv"
	"github.com/colisroute/colis/internal/logging"
)

const Prefix = "user_profile_"

func Key(userID int64) string {
	return Prefix + strconv.FormatInt(userID, 10)
}

type Cache struct {
	repo kv.Repository
	log  logging.Logger
}

func New(repo kv.Repository, log logging.Logger) *Cache {
	return &Cache{repo: repo, log: log.With("component", "profilecache")}
}

// Get returns the cached profile, or nil on a miss or unreadable entry.
func (c *Cache) Get(ctx context.Context, userID int64) *models.User {
	raw, err := c.repo.Get(ctx, Key(userID))
	if err != nil {
		c.log.Warn(ctx, "read failed", "user_id", userID, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		c.log.Warn(ctx, "dropping unreadable entry", "user_id", userID, "error", err)
		if err := c.repo.Delete(ctx, Key(userID)); err != nil {
			c.log.Warn(ctx, "delete failed", "user_id", userID, "error", err)
		}
		return nil
	}
	c.log.Debug(ctx, "hit", "user_id", userID)
	return &u
}

// Save stores u under userID, the id it was requested with.
func (c *Cache) Save(ctx context.Context, userID int64, u models.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		c.log.Warn(ctx, "encode failed", "user_id", userID, "error", err)
		return
	}
	if err := c.repo.Set(ctx, Key(userID), raw); err != nil {
		c.log.Warn(ctx, "save failed", "user_id", userID, "error", err)
	}
}

// Clear drops every cached profile.
func (c *Cache) Clear(ctx context.Context) error {
	return c.repo.DeletePrefix(ctx, Prefix)
}
