// Package projection builds local conversation threads from store snapshots.
// Handles filtering and ordering.
// Does not emit events or interact with UI directly.
package projection

import (
	"cmp"
	"dm-lab/domain"
	"slices"

	"github.com/samber/lo"
)

// Thread holds the ordered messages exchanged between Owner and Peer.
type Thread struct {
	Owner    string
	Peer     string
	Messages []domain.Message
}

func NewThread(owner, peer string) *Thread {
	return &Thread{
		Owner:    owner,
		Peer:     peer,
		Messages: []domain.Message{},
	}
}

// Consume replaces the thread content with the given snapshot.
// Snapshots are complete, never deltas.
func (t *Thread) Consume(snapshot []domain.Message) {
	t.Messages = Materialize(snapshot, domain.NewParticipants(t.Owner, t.Peer))
}

// Materialize keeps the messages of a single pair and orders them oldest first.
func Materialize(snapshot []domain.Message, pair domain.Participants) []domain.Message {
	thread := lo.Filter(snapshot, func(m domain.Message, _ int) bool {
		return m.Pair().Equal(pair)
	})
	slices.SortFunc(thread, BySentAt)
	return thread
}

// BySentAt orders by normalized send time, then store sequence, then id,
// so that equal timestamps still render in a stable order.
func BySentAt(a, b domain.Message) int {
	if c := a.SentAt.Compare(b.SentAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
