package main

import (
	"bytes"
	"dm-lab/domain"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
)

func TestThreadPrinter_PrintsEachMessageOnce(t *testing.T) {
	req := require.New(t)
	color.Disable()
	var out bytes.Buffer
	p := newThreadPrinter(&out, "alice", "Bob")

	first := domain.Message{ID: "m1", SenderID: "bob", ReceiverID: "alice", Text: "hi",
		SentAt: domain.TimestampFromTime(time.Date(2024, 1, 1, 9, 5, 0, 0, time.Local))}
	second := domain.Message{ID: "m2", SenderID: "alice", ReceiverID: "bob", Text: "hello",
		SentAt: domain.TimestampFromTime(time.Date(2024, 1, 1, 9, 6, 0, 0, time.Local))}

	// Given two successive snapshots, the second one a superset of the first
	p.print([]domain.Message{first})
	p.print([]domain.Message{first, second})

	// Then every message is printed exactly once
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	req.Len(lines, 2)
	req.Contains(lines[0], "Bob hi")
	req.Contains(lines[1], "me hello")
}
