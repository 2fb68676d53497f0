package combat

import (
	"github.com/Aunggrid/wildmarch/internal/entity"
)

// TurnOrder is the circular sequence of combat participants plus the
// cursor of the currently acting one. It is mutated only between turns.
type TurnOrder struct {
	entries []entity.Actor
	cursor  int
}

// Append adds an actor to the end of the order. An actor already present
// (by ID) is not added twice.
func (o *TurnOrder) Append(a entity.Actor) bool {
	if o.Contains(a.ID()) {
		return false
	}
	o.entries = append(o.entries, a)
	return true
}

// Contains reports whether an actor with the given ID is in the order.
func (o *TurnOrder) Contains(id string) bool {
	for _, e := range o.entries {
		if e.ID() == id {
			return true
		}
	}
	return false
}

// Len returns the number of participants.
func (o *TurnOrder) Len() int { return len(o.entries) }

// Actors returns the participants in turn sequence.
func (o *TurnOrder) Actors() []entity.Actor { return o.entries }

// Current returns the acting participant, or nil when the order is
// empty. The cursor is wrapped before the lookup.
func (o *TurnOrder) Current() entity.Actor {
	if len(o.entries) == 0 {
		return nil
	}
	o.cursor %= len(o.entries)
	return o.entries[o.cursor]
}

// Advance moves the cursor to the next participant.
func (o *TurnOrder) Advance() {
	if len(o.entries) == 0 {
		o.cursor = 0
		return
	}
	o.cursor = (o.cursor + 1) % len(o.entries)
}

// Remove deletes the actor with the given ID, keeping the cursor on the
// same participant where possible.
func (o *TurnOrder) Remove(id string) bool {
	for i, e := range o.entries {
		if e.ID() != id {
			continue
		}
		o.entries = append(o.entries[:i], o.entries[i+1:]...)
		if i < o.cursor {
			o.cursor--
		}
		if len(o.entries) > 0 {
			o.cursor %= len(o.entries)
		} else {
			o.cursor = 0
		}
		return true
	}
	return false
}

// Cleanup removes every participant the keep predicate rejects and
// returns the removed actors. Called at the start of a turn evaluation.
func (o *TurnOrder) Cleanup(keep func(entity.Actor) bool) []entity.Actor {
	var removed []entity.Actor
	kept := o.entries[:0]
	for i, e := range o.entries {
		if keep(e) {
			kept = append(kept, e)
			continue
		}
		removed = append(removed, e)
		if i < o.cursor {
			o.cursor--
		}
	}
	o.entries = kept
	if len(o.entries) > 0 {
		if o.cursor < 0 {
			o.cursor = 0
		}
		o.cursor %= len(o.entries)
	} else {
		o.cursor = 0
	}
	return removed
}

// Clear empties the order.
func (o *TurnOrder) Clear() {
	o.entries = nil
	o.cursor = 0
}
