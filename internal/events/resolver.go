package events

import (
	"errors"
	"fmt"

	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/repositories"
)

// ErrSuppressed is returned when an event is a self-interaction that must
// produce no notification and no domain side-effect.
var ErrSuppressed = errors.New("notification suppressed: self-interaction")

// Resolver computes the set of user identities that must receive a
// notification for a given event.
type Resolver struct {
	users repositories.UserRepository
}

// NewResolver creates a Resolver backed by the user store
func NewResolver(users repositories.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the recipient IDs for an event, or ErrSuppressed when the
// event must be dropped. ownerID is the owner of the acted-on subject (the
// liked report's owner, the parent feedback's author); it is ignored for
// broadcast events.
//
// Broadcast recipient sets are snapshots of the registered users at the
// moment of the call; users registered later never receive the event.
func (r *Resolver) Resolve(action models.ActionType, actorID, ownerID uint) ([]uint, error) {
	switch action {
	case models.ActionReportCreated, models.ActionPredictionCreated:
		return r.users.GetUserIDs()
	case models.ActionReportLiked, models.ActionPredictionLiked:
		if actorID == ownerID {
			return nil, ErrSuppressed
		}
		return []uint{ownerID}, nil
	case models.ActionFeedbackAdded:
		return []uint{ownerID}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", action)
	}
}
