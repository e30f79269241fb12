//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"dm-lab/domain"
	"dm-lab/domain/document"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
	Wait()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Subscription is the handle of a standing live query.
// Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// IIdentityStore authenticates phone numbers through a verification code
// and exposes the identity behind its own persisted credential.
type IIdentityStore interface {
	StartVerification(ctx context.Context, phoneNumber string) (string, error)
	ConfirmVerification(ctx context.Context, verificationID, code string) (domain.Identity, error)
	CurrentIdentity(ctx context.Context) (*domain.Identity, error)
	SignOut(ctx context.Context) error
}

// ISessionCache is the local key-value persistence surviving restarts.
// Get returns nil when the key is absent.
type ISessionCache interface {
	Get(ctx context.Context, key string) (*string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// IDocumentStore is a store of JSON-like documents grouped in collections,
// with one-shot queries and push-based live queries delivering full snapshots.
// The context given to Subscribe only bounds opening the live query; it runs
// until Unsubscribe or until the store is closed.
type IDocumentStore interface {
	Add(ctx context.Context, collection string, fields document.Fields) (string, error)
	Create(ctx context.Context, collection, id string, fields document.Fields) error
	Get(ctx context.Context, collection, id string) (document.Document, error)
	Query(ctx context.Context, q document.Query) ([]document.Document, error)
	Subscribe(ctx context.Context, q document.Query, onSnapshot document.SnapshotFunc) (Subscription, error)
}

type IProfileDirectory interface {
	Get(ctx context.Context, id string) (domain.Profile, error)
	Upsert(ctx context.Context, profile domain.Profile) error
	ListExcept(ctx context.Context, id string) ([]domain.Profile, error)
}

// IConversationStore is the append-only message log. Subscribe filters on
// "participants contains participantID" only.
type IConversationStore interface {
	Append(ctx context.Context, message domain.Message) error
	Subscribe(ctx context.Context, participantID string, onSnapshot func([]domain.Message)) (Subscription, error)
}

// ICodeSender delivers a verification code to a phone number.
type ICodeSender interface {
	Send(ctx context.Context, phoneNumber, code string) error
}

type PendingVerification struct {
	PhoneNumber string
	CodeHash    string
	ExpiresAt   time.Time
	Attempts    int
}

type IVerificationRepository interface {
	SavePending(id string, pending PendingVerification) error
	GetPending(id string) (PendingVerification, error)
	// RecordAttempt atomically counts one more code check and returns the total.
	RecordAttempt(id string) (int, error)
	DeletePending(id string) error
	ResolveUID(phoneNumber string) (string, error)
	Revoke(tokenID string, until time.Time) error
	IsRevoked(tokenID string) (bool, error)
}
