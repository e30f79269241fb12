package services

import (
	"context"
	"dm-lab/contract"
	"dm-lab/domain"
	"dm-lab/errors"
	"dm-lab/projection"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

type ViewOption func(*ConversationView)

// WithClock overrides the time source used to stamp sent messages.
func WithClock(now func() time.Time) ViewOption {
	return func(v *ConversationView) {
		v.now = now
	}
}

// WithOnChange registers a callback receiving every rebuilt thread.
// It is called outside the view lock.
func WithOnChange(onChange func([]domain.Message)) ViewOption {
	return func(v *ConversationView) {
		v.onChange = onChange
	}
}

// ConversationView keeps a live, ordered copy of one two-party thread.
// Every snapshot delivered by the store replaces the thread entirely.
// Snapshots from a subscription that was closed or replaced are dropped,
// which is tracked with a generation counter bumped on Open and Close.
type ConversationView struct {
	mu         sync.Mutex
	store      contract.IConversationStore
	log        *slog.Logger
	now        func() time.Time
	onChange   func([]domain.Message)
	thread     *projection.Thread
	sub        contract.Subscription
	generation uint64
}

func NewConversationView(store contract.IConversationStore, log *slog.Logger, opts ...ViewOption) *ConversationView {
	v := &ConversationView{
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Open subscribes to every message of selfID and narrows locally to the
// pair {selfID, peerID}. A view already open is closed first.
func (v *ConversationView) Open(ctx context.Context, selfID, peerID string) error {
	if selfID == "" {
		return errors.ErrNotAuthenticated
	}
	if peerID == "" || peerID == selfID {
		return fmt.Errorf("%w: invalid peer %q", errors.ErrInvalidInput, peerID)
	}

	v.mu.Lock()
	previous := v.sub
	v.sub = nil
	v.generation++
	generation := v.generation
	v.thread = projection.NewThread(selfID, peerID)
	v.mu.Unlock()

	if previous != nil {
		previous.Unsubscribe()
	}

	sub, err := v.store.Subscribe(ctx, selfID, func(snapshot []domain.Message) {
		v.consume(generation, snapshot)
	})
	if err != nil {
		return asNetworkError(err)
	}

	v.mu.Lock()
	if v.generation != generation {
		// Closed or reopened while subscribing
		v.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	v.sub = sub
	v.mu.Unlock()
	v.log.Debug("Conversation opened", "self", selfID, "peer", peerID)
	return nil
}

func (v *ConversationView) consume(generation uint64, snapshot []domain.Message) {
	v.mu.Lock()
	if generation != v.generation || v.thread == nil {
		v.mu.Unlock()
		return
	}
	v.thread.Consume(snapshot)
	messages := slices.Clone(v.thread.Messages)
	onChange := v.onChange
	v.mu.Unlock()

	if onChange != nil {
		onChange(messages)
	}
}

// Send appends a message to the store. It is not inserted locally: it shows
// up when the subscription delivers it back.
func (v *ConversationView) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty message", errors.ErrInvalidInput)
	}

	v.mu.Lock()
	thread := v.thread
	v.mu.Unlock()
	if thread == nil {
		return fmt.Errorf("%w: conversation is not open", errors.ErrNotAuthenticated)
	}

	sentAt := domain.NativeTimestamp(timestamppb.New(v.now()))
	message := domain.NewMessage(thread.Owner, thread.Peer, text, sentAt)
	if err := v.store.Append(ctx, message); err != nil {
		if stderrors.Is(err, errors.ErrNotAuthenticated) || stderrors.Is(err, errors.ErrPermissionDenied) {
			return err
		}
		return asNetworkError(err)
	}
	return nil
}

// Messages returns a copy of the current ordered thread.
func (v *ConversationView) Messages() []domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.thread == nil {
		return []domain.Message{}
	}
	return slices.Clone(v.thread.Messages)
}

// Close cancels the subscription. Safe to call any number of times.
func (v *ConversationView) Close() {
	v.mu.Lock()
	sub := v.sub
	v.sub = nil
	v.generation++
	v.thread = nil
	v.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
		v.log.Debug("Conversation closed")
	}
}
