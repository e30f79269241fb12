package services

import (
	"context"
	"log/slog"
	"sync"
)

// LogCodeSender writes verification codes to the log instead of texting
// them. Meant for local runs.
type LogCodeSender struct {
	log *slog.Logger
}

func NewLogCodeSender(log *slog.Logger) *LogCodeSender {
	return &LogCodeSender{log: log}
}

func (s *LogCodeSender) Send(ctx context.Context, phoneNumber, code string) error {
	s.log.Info("Verification code", "phone_number", phoneNumber, "code", code)
	return nil
}

// OutboxCodeSender keeps the last code sent to each phone number.
type OutboxCodeSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewOutboxCodeSender() *OutboxCodeSender {
	return &OutboxCodeSender{codes: make(map[string]string)}
}

func (s *OutboxCodeSender) Send(ctx context.Context, phoneNumber, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phoneNumber] = code
	return nil
}

// LastCode returns the latest code sent to phoneNumber.
func (s *OutboxCodeSender) LastCode(phoneNumber string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[phoneNumber]
	return code, ok
}
