// This file defines Message records and related rules.
// Messages are immutable once created.

package domain

// Message is an immutable two-party chat record.
// ID and Seq are assigned by the store; both are empty for a message
// that has not been appended yet.
type Message struct {
	ID           string
	Seq          uint64
	SenderID     string
	ReceiverID   string
	Text         string
	SentAt       Timestamp
	Participants Participants
}

func NewMessage(senderID, receiverID, text string, sentAt Timestamp) Message {
	return Message{
		SenderID:     senderID,
		ReceiverID:   receiverID,
		Text:         text,
		SentAt:       sentAt,
		Participants: NewParticipants(senderID, receiverID),
	}
}

// Pair is the unordered {sender, receiver} pair, which decides the thread.
func (m Message) Pair() Participants {
	return NewParticipants(m.SenderID, m.ReceiverID)
}
