package projection

import (
	"dm-lab/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func msg(id string, seq uint64, from, to string, at domain.Timestamp) domain.Message {
	m := domain.NewMessage(from, to, id, at)
	m.ID = id
	m.Seq = seq
	return m
}

func TestThread_Consume_KeepsOnlyThePair(t *testing.T) {
	req := require.New(t)

	// Given U1 talks with U2 and U3
	snapshot := []domain.Message{
		msg("m1", 1, "U1", "U2", domain.RawMillis(1000)),
		msg("m2", 2, "U2", "U1", domain.RawMillis(2000)),
		msg("m3", 3, "U1", "U3", domain.RawMillis(3000)),
	}
	thread := NewThread("U1", "U2")

	// When the snapshot is consumed
	thread.Consume(snapshot)

	// Then only the U1/U2 messages remain, oldest first
	req.Len(thread.Messages, 2)
	req.Equal("m1", thread.Messages[0].ID)
	req.Equal("m2", thread.Messages[1].ID)
}

func TestThread_Consume_ReplacesPreviousSnapshot(t *testing.T) {
	req := require.New(t)
	thread := NewThread("U1", "U2")

	thread.Consume([]domain.Message{msg("m1", 1, "U1", "U2", domain.RawMillis(1000))})
	req.Len(thread.Messages, 1)

	thread.Consume(nil)
	req.NotNil(thread.Messages)
	req.Empty(thread.Messages)
}

func TestMaterialize_OrdersMixedTimestampShapes(t *testing.T) {
	req := require.New(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Given messages stored with both timestamp representations, out of order
	snapshot := []domain.Message{
		msg("late", 1, "U1", "U2", domain.NativeTimestamp(timestamppb.New(base.Add(2*time.Second)))),
		msg("early", 2, "U2", "U1", domain.RawMillis(base.UnixMilli())),
		msg("middle", 3, "U1", "U2", domain.RawMillis(base.Add(time.Second).UnixMilli())),
	}

	// When materialized
	thread := Materialize(snapshot, domain.NewParticipants("U2", "U1"))

	// Then they are sorted by their instant
	req.Equal([]string{"early", "middle", "late"}, []string{thread[0].ID, thread[1].ID, thread[2].ID})
}

func TestMaterialize_TiesAreDeterministic(t *testing.T) {
	req := require.New(t)
	at := domain.RawMillis(5000)

	forward := []domain.Message{
		msg("b", 2, "U1", "U2", at),
		msg("a", 2, "U2", "U1", at),
		msg("c", 1, "U1", "U2", at),
	}
	backward := []domain.Message{forward[2], forward[1], forward[0]}

	first := Materialize(forward, domain.NewParticipants("U1", "U2"))
	second := Materialize(backward, domain.NewParticipants("U1", "U2"))

	req.Equal(first, second)
	req.Equal("c", first[0].ID)
	req.Equal("a", first[1].ID)
	req.Equal("b", first[2].ID)
}

func TestMaterialize_DoesNotMutateSnapshot(t *testing.T) {
	req := require.New(t)
	snapshot := []domain.Message{
		msg("m2", 2, "U1", "U2", domain.RawMillis(2000)),
		msg("m1", 1, "U1", "U2", domain.RawMillis(1000)),
	}

	_ = Materialize(snapshot, domain.NewParticipants("U1", "U2"))

	req.Equal("m2", snapshot[0].ID)
}
