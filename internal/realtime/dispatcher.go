package realtime

import (
	"encoding/json"
	"log"
)

// Dispatcher fans a payload out to every connection currently in a group.
// Publishes are fire-and-forget: a frame is enqueued to each member's own
// write pump and the call returns without waiting for any client.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher over the given registry
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Publish delivers the payload to every member of the group at the moment
// of the call. A member whose buffer is full or whose connection has closed
// is torn down and removed; delivery to the remaining members is unaffected.
func (d *Dispatcher) Publish(group string, payload Payload) {
	data, err := json.Marshal(payload.frame())
	if err != nil {
		log.Printf("realtime: failed to encode payload for group %q: %v", group, err)
		return
	}

	for _, c := range d.registry.Members(group) {
		if !c.enqueue(data) {
			log.Printf("realtime: dropping unresponsive connection from group %q", group)
			d.registry.RemoveClient(c)
			c.Close()
		}
	}
}
