package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"plexextras/internal/collector"
)

// sortTitles orders media titles with English collation so case and accents
// do not scatter the listing.
func sortTitles(titles []string) {
	collate.New(language.English, collate.IgnoreCase).SortStrings(titles)
}

func renderSummary(summary *collector.Summary, collection string, noDelete bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nScanned %q: %d item(s), %d with local extras\n",
		summary.Section.Title, summary.ItemCount, summary.ExtrasCount)

	writeTitleTable(&b, fmt.Sprintf("Already in %q (%d)", collection, len(summary.AlreadyIn)), summary.AlreadyIn)
	writeTitleTable(&b, fmt.Sprintf("Added (%d)", len(summary.Added)), summary.Added)
	if noDelete {
		writeTitleTable(&b, fmt.Sprintf("In collection without local extras, kept (%d)", len(summary.Kept)), summary.Kept)
	} else {
		writeTitleTable(&b, fmt.Sprintf("Removed (%d)", len(summary.Removed)), summary.Removed)
	}

	if summary.Failed > 0 {
		fmt.Fprintf(&b, "\n%d mutation(s) failed; see the log for details\n", summary.Failed)
	}
	return b.String()
}

func writeTitleTable(b *strings.Builder, header string, titles []string) {
	if len(titles) == 0 {
		fmt.Fprintf(b, "\n%s: none\n", header)
		return
	}

	sorted := append([]string{}, titles...)
	sortTitles(sorted)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{header})
	for _, title := range sorted {
		tw.AppendRow(table.Row{title})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{
		Number:      1,
		Align:       text.AlignLeft,
		AlignHeader: text.AlignLeft,
	}})

	b.WriteByte('\n')
	b.WriteString(tw.Render())
	b.WriteByte('\n')
}
