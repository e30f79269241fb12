package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestQuery_Matches(t *testing.T) {
	doc := Document{ID: "m1", Seq: 1, Fields: Fields{
		"senderId": "u1",
		"users":    []any{"u1", "u2"},
		"count":    float64(3),
	}}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{"array contains member", NewQuery("chats").Where("users", OpArrayContains, "u2"), true},
		{"array contains stranger", NewQuery("chats").Where("users", OpArrayContains, "u3"), false},
		{"equal on string", NewQuery("chats").Where("senderId", OpEqual, "u1"), true},
		{"not equal on string", NewQuery("chats").Where("senderId", OpNotEqual, "u1"), false},
		{"integer compares with stored number", NewQuery("chats").Where("count", OpEqual, 3), true},
		{"missing field never matches not equal", NewQuery("chats").Where("uid", OpNotEqual, "u1"), false},
		{"filters are and-ed", NewQuery("chats").
			Where("users", OpArrayContains, "u1").
			Where("senderId", OpEqual, "u2"), false},
		{"no filter matches everything", NewQuery("chats"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.query.Matches(doc))
		})
	}
}

func TestQuery_Where_DoesNotShareFilters(t *testing.T) {
	req := require.New(t)
	base := NewQuery("users").Where("uid", OpNotEqual, "a")

	left := base.Where("name", OpEqual, "Alice")
	right := base.Where("name", OpEqual, "Bob")

	req.Len(base.Filters, 1)
	req.Equal("Alice", left.Filters[1].Value)
	req.Equal("Bob", right.Filters[1].Value)
}

func TestMarshal_KeepsNativeTimestamps(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC)

	// Given a document written with a Go time and a string list
	doc := Document{ID: "m1", Seq: 42, Fields: Fields{
		"timestamp": at,
		"users":     []string{"u1", "u2"},
		"text":      "hi",
	}}

	// When it is stored and read back
	b, err := Marshal(doc)
	req.NoError(err)
	decoded, err := Unmarshal(b)
	req.NoError(err)

	// Then the time comes back as a store-native timestamp
	ts, ok := decoded.Fields["timestamp"].(*timestamppb.Timestamp)
	req.True(ok)
	req.True(at.Equal(ts.AsTime()))
	req.Equal(uint64(42), decoded.Seq)
	users, ok := decoded.Strings("users")
	req.True(ok)
	req.Equal([]string{"u1", "u2"}, users)
}

func TestEncodeQuery_RoundTrip(t *testing.T) {
	req := require.New(t)
	q := NewQuery("chats").Where("users", OpArrayContains, "u1")

	s, err := EncodeQuery(q)
	req.NoError(err)
	decoded, err := DecodeQuery(s)
	req.NoError(err)

	req.Equal(q, decoded)
}

func TestDecodeQuery_RejectsUnknownOperator(t *testing.T) {
	req := require.New(t)
	q := NewQuery("chats").Where("users", Op("in"), "u1")
	s, err := EncodeQuery(q)
	req.NoError(err)

	_, err = DecodeQuery(s)
	req.Error(err)
}

func TestCanonicalFields_RejectsUnsupportedValues(t *testing.T) {
	_, err := CanonicalFields(Fields{"ch": make(chan int)})
	require.Error(t, err)
}
