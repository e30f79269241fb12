package repositories

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/domain/document"
	"dm-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const ChatsCollection = "chats"

// Stored field names of a message document.
const (
	fieldSenderID   = "senderId"
	fieldReceiverID = "receiverId"
	fieldText       = "text"
	fieldTimestamp  = "timestamp"
	fieldUsers      = "users"
)

// ConversationRepository appends messages to the chats collection and
// subscribes to every message a participant takes part in.
type ConversationRepository struct {
	store contract.IDocumentStore
	log   *slog.Logger
}

func NewConversationRepository(store contract.IDocumentStore, log *slog.Logger) contract.IConversationStore {
	return &ConversationRepository{store: store, log: log}
}

func (r ConversationRepository) Append(ctx context.Context, message domain.Message) error {
	_, err := r.store.Add(ctx, ChatsCollection, fromMessage(message))
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, errors.ErrPermissionDenied), stderrors.Is(err, errors.ErrInvalidInput),
		stderrors.Is(err, errors.ErrNotAuthenticated):
		return err
	default:
		return fmt.Errorf("%w: %w", errors.ErrFetch, err)
	}
}

// Subscribe filters server side on membership only. Narrowing to one pair is
// left to the caller.
func (r ConversationRepository) Subscribe(ctx context.Context, participantID string, onSnapshot func([]domain.Message)) (contract.Subscription, error) {
	q := document.NewQuery(ChatsCollection).Where(fieldUsers, document.OpArrayContains, participantID)
	return r.store.Subscribe(ctx, q, func(docs []document.Document) {
		onSnapshot(r.toMessages(docs))
	})
}

func (r ConversationRepository) toMessages(docs []document.Document) []domain.Message {
	return lo.FilterMap(docs, func(doc document.Document, _ int) (domain.Message, bool) {
		m, err := toMessage(doc)
		if err != nil {
			r.log.Warn("Skipping malformed message", "id", doc.ID, "error", err)
			return domain.Message{}, false
		}
		return m, true
	})
}

func fromMessage(m domain.Message) document.Fields {
	var sentAt any
	switch m.SentAt.Kind() {
	case domain.NativeKind:
		sentAt = timestamppb.New(m.SentAt.Time())
	default:
		sentAt = m.SentAt.Time().UnixMilli()
	}
	return document.Fields{
		fieldSenderID:   m.SenderID,
		fieldReceiverID: m.ReceiverID,
		fieldText:       m.Text,
		fieldTimestamp:  sentAt,
		fieldUsers:      []string{m.SenderID, m.ReceiverID},
	}
}

func toMessage(doc document.Document) (domain.Message, error) {
	sender, ok := doc.String(fieldSenderID)
	if !ok || sender == "" {
		return domain.Message{}, fmt.Errorf("missing %s", fieldSenderID)
	}
	receiver, ok := doc.String(fieldReceiverID)
	if !ok || receiver == "" {
		return domain.Message{}, fmt.Errorf("missing %s", fieldReceiverID)
	}
	text, _ := doc.String(fieldText)
	sentAt, err := toTimestamp(doc.Fields[fieldTimestamp])
	if err != nil {
		return domain.Message{}, err
	}
	m := domain.NewMessage(sender, receiver, text, sentAt)
	m.ID = doc.ID
	m.Seq = doc.Seq
	return m, nil
}

// toTimestamp resolves the stored shapes of a send time: a store-native
// timestamp, epoch milliseconds, or an RFC 3339 date.
func toTimestamp(v any) (domain.Timestamp, error) {
	switch t := v.(type) {
	case *timestamppb.Timestamp:
		return domain.NativeTimestamp(t), nil
	case float64:
		return domain.RawMillis(int64(t)), nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return domain.Timestamp{}, fmt.Errorf("invalid %s: %w", fieldTimestamp, err)
		}
		return domain.TimestampFromTime(parsed), nil
	default:
		return domain.Timestamp{}, fmt.Errorf("unsupported %s %T", fieldTimestamp, v)
	}
}
