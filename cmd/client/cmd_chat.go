package main

import (
	"bufio"
	"context"
	"dm-lab/domain"
	"dm-lab/services"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
)

func newChatCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <peer-id>",
		Short: "Open a live conversation; every line typed is sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session, err := a.requireSession(ctx)
			if err != nil {
				return err
			}
			selfID, peerID := session.IdentityID(), args[0]

			peerName := peerID
			lookupCtx, cancel := a.withTimeout(ctx)
			if profile, err := a.profiles.Get(lookupCtx, peerID); err == nil {
				peerName = profile.DisplayName
			}
			cancel()

			out := cmd.OutOrStdout()
			printer := newThreadPrinter(out, selfID, peerName)
			view := services.NewConversationView(a.chats, a.log, services.WithOnChange(printer.print))
			if err := view.Open(ctx, selfID, peerID); err != nil {
				return fmt.Errorf("%s", describe(err))
			}
			defer view.Close()

			fmt.Fprintln(out, muted(fmt.Sprintf("Chatting with %s. Ctrl-D to leave.", peerName)))
			return readAndSend(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), a, view)
		},
	}
}

// readAndSend sends every non-empty line until stdin closes or ctx ends.
func readAndSend(ctx context.Context, in io.Reader, errOut io.Writer, a *app, view *services.ConversationView) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			sendCtx, cancel := a.withTimeout(ctx)
			err := view.Send(sendCtx, line)
			cancel()
			if err != nil {
				fmt.Fprintln(errOut, failure(describe(err)))
			}
		}
	}
}

// threadPrinter prints each message once, the first time a snapshot
// contains it.
type threadPrinter struct {
	mu       sync.Mutex
	out      io.Writer
	selfID   string
	peerName string
	printed  map[string]struct{}
}

func newThreadPrinter(out io.Writer, selfID, peerName string) *threadPrinter {
	return &threadPrinter{out: out, selfID: selfID, peerName: peerName, printed: make(map[string]struct{})}
}

func (p *threadPrinter) print(messages []domain.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range messages {
		if _, ok := p.printed[m.ID]; ok {
			continue
		}
		p.printed[m.ID] = struct{}{}
		renderMessage(p.out, p.selfID, m, p.peerName)
	}
}
