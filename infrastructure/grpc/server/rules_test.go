package server

import (
	"dm-lab/domain"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var alice = domain.Identity{ID: "alice", PhoneNumber: "+15555550001"}

func TestCanAdd(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		fields     document.Fields
		allowed    bool
	}{
		{"own message", "chats", document.Fields{"senderId": "alice", "receiverId": "bob", "users": []any{"alice", "bob"}}, true},
		{"users in any order", "chats", document.Fields{"senderId": "alice", "receiverId": "bob", "users": []any{"bob", "alice"}}, true},
		{"spoofed sender", "chats", document.Fields{"senderId": "bob", "receiverId": "alice", "users": []any{"alice", "bob"}}, false},
		{"not a participant", "chats", document.Fields{"senderId": "alice", "receiverId": "bob", "users": []any{"bob", "carol"}}, false},
		{"users leak to a third party", "chats", document.Fields{"senderId": "alice", "receiverId": "bob", "users": []any{"alice", "carol"}}, false},
		{"extra user", "chats", document.Fields{"senderId": "alice", "receiverId": "bob", "users": []any{"alice", "bob", "carol"}}, false},
		{"no receiver", "chats", document.Fields{"senderId": "alice", "users": []any{"alice", "bob"}}, false},
		{"message to self", "chats", document.Fields{"senderId": "alice", "receiverId": "alice", "users": []any{"alice", "alice"}}, false},
		{"users collection", "users", document.Fields{"uid": "alice"}, false},
		{"unknown collection", "secrets", document.Fields{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			err := canAdd(alice, tt.collection, tt.fields)
			if tt.allowed {
				req.NoError(err)
			} else {
				req.ErrorIs(err, errors.ErrPermissionDenied)
			}
		})
	}
}

func TestCanCreate(t *testing.T) {
	req := require.New(t)

	req.NoError(canCreate(alice, "users", "alice", document.Fields{"uid": "alice"}))
	req.ErrorIs(canCreate(alice, "users", "bob", document.Fields{"uid": "bob"}), errors.ErrPermissionDenied)
	req.ErrorIs(canCreate(alice, "users", "alice", document.Fields{"uid": "bob"}), errors.ErrPermissionDenied)
	req.ErrorIs(canCreate(alice, "chats", "alice", document.Fields{}), errors.ErrPermissionDenied)
}

func TestCanRead(t *testing.T) {
	req := require.New(t)
	mine := document.Document{ID: "m1", Fields: document.Fields{"users": []any{"alice", "bob"}}}
	theirs := document.Document{ID: "m2", Fields: document.Fields{"users": []any{"bob", "carol"}}}

	req.NoError(canRead(alice, "users", document.Document{ID: "bob"}))
	req.NoError(canRead(alice, "chats", mine))
	req.ErrorIs(canRead(alice, "chats", theirs), errors.ErrPermissionDenied)
	req.ErrorIs(canRead(alice, "secrets", mine), errors.ErrPermissionDenied)
}

func TestCanQuery(t *testing.T) {
	req := require.New(t)

	req.NoError(canQuery(alice, document.NewQuery("users").Where("uid", document.OpNotEqual, "alice")))
	req.NoError(canQuery(alice, document.NewQuery("chats").Where("users", document.OpArrayContains, "alice")))

	// Scoped to someone else, or not scoped at all
	req.ErrorIs(canQuery(alice, document.NewQuery("chats").Where("users", document.OpArrayContains, "bob")), errors.ErrPermissionDenied)
	req.ErrorIs(canQuery(alice, document.NewQuery("chats")), errors.ErrPermissionDenied)
	req.ErrorIs(canQuery(alice, document.NewQuery("chats").Where("senderId", document.OpEqual, "alice")), errors.ErrPermissionDenied)
	req.ErrorIs(canQuery(alice, document.NewQuery("secrets")), errors.ErrPermissionDenied)
}
