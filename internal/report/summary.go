package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nkoval/hiveportal/internal/database"
)

// Generator builds the markdown operations summary. It works purely from
// aggregate counts; raw record rows stay in the store.
type Generator struct {
	db *database.DB
}

func NewGenerator(db *database.DB) *Generator {
	return &Generator{db: db}
}

// GenerateSummary renders the current state of all three record kinds as a
// markdown document.
func (g *Generator) GenerateSummary() (string, error) {
	stats, err := g.db.GetStats()
	if err != nil {
		return "", fmt.Errorf("collecting stats: %w", err)
	}

	var b strings.Builder

	b.WriteString("# H.I.V.E. Operations Summary\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", time.Now().Format("January 2, 2006 15:04:05 MST")))

	b.WriteString("## Overview\n\n")
	b.WriteString("| Area | Records |\n")
	b.WriteString("|---|---|\n")
	b.WriteString(fmt.Sprintf("| Cyber incidents | %d (%d open) |\n", stats.IncidentCount, stats.OpenIncidents))
	b.WriteString(fmt.Sprintf("| Datasets | %d |\n", stats.DatasetCount))
	b.WriteString(fmt.Sprintf("| IT tickets | %d (%d open) |\n\n", stats.TicketCount, stats.OpenTickets))

	sections := []struct {
		title  string
		table  database.Table
		column string
	}{
		{"Incidents by Severity", database.Incidents, "severity"},
		{"Incidents by Status", database.Incidents, "status"},
		{"Tickets by Priority", database.Tickets, "priority"},
		{"Tickets by Status", database.Tickets, "status"},
		{"Datasets by Uploader", database.Datasets, "uploaded_by"},
	}

	for _, sec := range sections {
		counts, err := g.db.CountRowsBy(sec.table, sec.column)
		if err != nil {
			return "", fmt.Errorf("grouping %s by %s: %w", sec.table.Name, sec.column, err)
		}
		if len(counts) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("## %s\n\n", sec.title))
		b.WriteString("| Value | Count |\n")
		b.WriteString("|---|---|\n")

		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", k, counts[k]))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}
