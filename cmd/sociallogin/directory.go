package main

import (
	"maps"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

// account is a synced user as the directory stores it.
type account struct {
	UserID     string         `json:"user_id"`
	Folder     string         `json:"folder"`
	Properties map[string]any `json:"properties"`
}

// directory is the in-memory identity store the login flow syncs into.
type directory struct {
	mu    sync.Mutex
	users *gocache.Cache
}

func newDirectory() *directory {
	return &directory{users: gocache.New(gocache.NoExpiration, 0)}
}

// properties returns a copy of the stored properties of userID.
func (d *directory) properties(userID string) map[string]any {
	v, ok := d.users.Get(userID)
	if !ok {
		return map[string]any{}
	}
	return maps.Clone(v.(*account).Properties)
}

// sync merges identity into the stored account under lock so concurrent
// logins of one user do not lose updates.
func (d *directory) sync(folder string, identity *oauth.Identity, extra map[string]any) *account {
	d.mu.Lock()
	defer d.mu.Unlock()

	props := make(map[string]any, len(identity.Properties)+len(extra))
	if v, ok := d.users.Get(identity.UserID); ok {
		maps.Copy(props, v.(*account).Properties)
	}
	maps.Copy(props, identity.Properties)
	maps.Copy(props, extra)

	acc := &account{UserID: identity.UserID, Folder: folder, Properties: props}
	d.users.Set(identity.UserID, acc, gocache.NoExpiration)
	return acc
}
