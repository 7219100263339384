// Package permission fronts the host permission system: register-if-absent at
// startup and cached has-permission lookups per resolve.
package permission

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/GatherBonus_Go/internal/domain"
	"github.com/osse101/GatherBonus_Go/internal/host"
	"github.com/osse101/GatherBonus_Go/internal/logger"
)

// Checker answers has-permission queries
type Checker interface {
	Has(userID, perm string) bool
	RegisterAll(perms []string) error
	Invalidate()
}

type permKey struct {
	user string
	perm string
}

type checker struct {
	perms host.Permissions
	cache *expirable.LRU[permKey, bool]
}

// NewChecker wraps perms with an expirable LRU cache of size entries that
// live for ttl. A size <= 0 or ttl <= 0 disables caching.
//
// When perms implements host.PermissionNotifier, cached answers are dropped
// as soon as the host reports a grant, revoke or registration. Hosts without
// notifications see changes only after ttl, or after Invalidate.
func NewChecker(perms host.Permissions, size int, ttl time.Duration) Checker {
	c := &checker{perms: perms}
	if size <= 0 || ttl <= 0 {
		return c
	}
	c.cache = expirable.NewLRU[permKey, bool](size, nil, ttl)
	if n, ok := perms.(host.PermissionNotifier); ok {
		n.OnPermissionChange(c.forget)
	}
	return c
}

// Has reports whether userID holds perm
func (c *checker) Has(userID, perm string) bool {
	if c.cache == nil {
		return c.perms.UserHas(userID, perm)
	}
	key := permKey{user: userID, perm: perm}
	if v, ok := c.cache.Get(key); ok {
		return v
	}
	v := c.perms.UserHas(userID, perm)
	c.cache.Add(key, v)
	return v
}

// RegisterAll registers each permission the host does not know yet.
// Duplicate and empty names are skipped.
func (c *checker) RegisterAll(perms []string) error {
	seen := make(map[string]bool, len(perms))
	var errs []error
	for _, p := range perms {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if c.perms.Exists(p) {
			continue
		}
		if err := c.perms.Register(p); err != nil && !errors.Is(err, domain.ErrPermissionExists) {
			errs = append(errs, fmt.Errorf("register %s: %w", p, err))
			continue
		}
		logger.Debug(LogMsgRegistered, LogFieldPermission, p)
	}
	c.Invalidate()
	return errors.Join(errs...)
}

// forget drops the cached answer for one user, or every answer when userID
// is empty.
func (c *checker) forget(userID, perm string) {
	if userID == "" {
		c.cache.Purge()
		return
	}
	c.cache.Remove(permKey{user: userID, perm: perm})
}

// Invalidate drops every cached answer
func (c *checker) Invalidate() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
