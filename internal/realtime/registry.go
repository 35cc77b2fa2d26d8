package realtime

import (
	"fmt"
	"sync"
)

// Fixed broadcast group names, one per event category
const (
	GroupReports       = "reports"
	GroupPredictions   = "predictions"
	GroupNotifications = "notifications"
)

// UserGroup returns the private group name for a user identity
func UserGroup(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// Registry is the process-wide mapping from group name to the set of live
// connections subscribed to it. It is purely in-memory: on restart every
// client re-handshakes and the mapping is rebuilt from scratch.
type Registry struct {
	mu       sync.RWMutex
	groups   map[string]map[*Client]struct{}
	byClient map[*Client]map[string]struct{}
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		groups:   make(map[string]map[*Client]struct{}),
		byClient: make(map[*Client]map[string]struct{}),
	}
}

// Join adds a client to a group, creating the group on first join.
// Joining a group twice is a no-op.
func (r *Registry) Join(group string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		r.groups[group] = members
	}
	members[c] = struct{}{}

	joined, ok := r.byClient[c]
	if !ok {
		joined = make(map[string]struct{})
		r.byClient[c] = joined
	}
	joined[group] = struct{}{}
}

// Leave removes a client from a group. Leaving a group the client never
// joined is a no-op.
func (r *Registry) Leave(group string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(group, c)
}

func (r *Registry) leaveLocked(group string, c *Client) {
	if members, ok := r.groups[group]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(r.groups, group)
		}
	}
	if joined, ok := r.byClient[c]; ok {
		delete(joined, group)
		if len(joined) == 0 {
			delete(r.byClient, c)
		}
	}
}

// Members returns a snapshot of the clients currently in a group
func (r *Registry) Members(group string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.groups[group]
	snapshot := make([]*Client, 0, len(members))
	for c := range members {
		snapshot = append(snapshot, c)
	}
	return snapshot
}

// RemoveClient removes a client from every group it joined. Called on
// disconnect; removing an already-removed client is a no-op.
func (r *Registry) RemoveClient(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for group := range r.byClient[c] {
		r.leaveLocked(group, c)
	}
}
