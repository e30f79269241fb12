package server

import (
	"dm-lab/domain"
	"dm-lab/domain/document"
	"dm-lab/errors"
	"dm-lab/repositories"
	"fmt"

	"github.com/samber/lo"
)

// Access rules of the document store, checked against the caller's identity.
//   - users: anyone signed in reads; a caller creates only its own profile.
//   - chats: a caller writes only as sender to one other receiver, with users
//     holding exactly that pair, and reads only what it takes part in.
//   - any other collection is closed.

func canAdd(caller domain.Identity, collection string, fields document.Fields) error {
	if collection != repositories.ChatsCollection {
		return denied("add to %s", collection)
	}
	doc := document.Document{Fields: fields}
	sender, _ := doc.String("senderId")
	if sender != caller.ID {
		return denied("send as %q", sender)
	}
	receiver, _ := doc.String("receiverId")
	if receiver == "" || receiver == sender {
		return denied("send to %q", receiver)
	}
	users, _ := doc.Strings("users")
	if !domain.NewParticipants(sender, receiver).Equal(participantsOf(users)) {
		return denied("list users other than sender and receiver")
	}
	return nil
}

func participantsOf(users []string) domain.Participants {
	if len(users) != 2 {
		return domain.Participants{}
	}
	return domain.NewParticipants(users[0], users[1])
}

func canCreate(caller domain.Identity, collection, id string, fields document.Fields) error {
	if collection != repositories.UsersCollection {
		return denied("create in %s", collection)
	}
	if id != caller.ID {
		return denied("create profile %q", id)
	}
	if uid, ok := (document.Document{Fields: fields}).String("uid"); ok && uid != caller.ID {
		return denied("create profile with uid %q", uid)
	}
	return nil
}

func canRead(caller domain.Identity, collection string, doc document.Document) error {
	switch collection {
	case repositories.UsersCollection:
		return nil
	case repositories.ChatsCollection:
		users, _ := doc.Strings("users")
		if !lo.Contains(users, caller.ID) {
			return denied("read message %s", doc.ID)
		}
		return nil
	default:
		return denied("read %s", collection)
	}
}

// canQuery accepts chats queries only when they are scoped to the caller's
// own messages, so every document they can return is readable.
func canQuery(caller domain.Identity, q document.Query) error {
	switch q.Collection {
	case repositories.UsersCollection:
		return nil
	case repositories.ChatsCollection:
		scoped := lo.ContainsBy(q.Filters, func(f document.Filter) bool {
			return f.Field == "users" && f.Op == document.OpArrayContains && f.Value == caller.ID
		})
		if !scoped {
			return denied("query chats without users array-contains %q", caller.ID)
		}
		return nil
	default:
		return denied("query %s", q.Collection)
	}
}

func denied(format string, args ...any) error {
	return fmt.Errorf("%w: cannot %s", errors.ErrPermissionDenied, fmt.Sprintf(format, args...))
}
