package main

import (
	"dm-lab/domain"
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func success(s string) string { return color.New(color.FgGreen).Render(s) }
func failure(s string) string { return color.New(color.FgRed).Render(s) }
func muted(s string) string   { return color.New(color.FgGray).Render(s) }

// renderMessage prints one line of a thread: own messages on the right
// in cyan, the peer's in yellow.
func renderMessage(w io.Writer, selfID string, m domain.Message, peerName string) {
	clock := muted(m.SentAt.Clock(time.Local))
	if m.SenderID == selfID {
		fmt.Fprintf(w, "%s %s %s\n", clock, color.New(color.FgCyan, color.OpBold).Render("me"), m.Text)
		return
	}
	fmt.Fprintf(w, "%s %s %s\n", clock, color.New(color.FgYellow, color.OpBold).Render(peerName), m.Text)
}

func renderProfiles(w io.Writer, profiles []domain.Profile) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Phone"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	for _, p := range profiles {
		table.Append([]string{p.ID, p.DisplayName, p.PhoneNumber})
	}
	table.Render()
}
