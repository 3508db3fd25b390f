package agescan

import "os/user"

// ownerNames caches owner id lookups against the system identity registry.
// Ids without a registry entry resolve to themselves.
type ownerNames struct {
	cache map[string]string
}

// newOwnerNames creates an empty lookup cache.
func newOwnerNames() *ownerNames {
	return &ownerNames{cache: make(map[string]string)}
}

// name resolves a numeric owner id to a display name.
func (o *ownerNames) name(uid string) string {
	if name, ok := o.cache[uid]; ok {
		return name
	}

	name := uid
	if u, err := user.LookupId(uid); err == nil && u.Username != "" {
		name = u.Username
	}

	o.cache[uid] = name

	return name
}
