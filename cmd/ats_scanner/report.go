package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/gcbaptista/go-ats-scanner/api"
)

// renderReport formats an analysis for humans. Terminals get tables;
// pipes and files get one fact per line.
func renderReport(resp api.AnalysisResponse, pretty bool) string {
	if pretty {
		return renderReportTables(resp)
	}
	return renderReportPlain(resp)
}

func renderReportPlain(resp api.AnalysisResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Similarity: %s\n", formatPercent(resp.Similarity))
	fmt.Fprintf(&b, "Verdict: %s\n", resp.Verdict)
	fmt.Fprintf(&b, "%s\n", resp.Message)

	switch {
	case resp.MissingCount == 0:
		b.WriteString("Missing keywords: none\n")
	case resp.Truncated:
		fmt.Fprintf(&b, "Missing keywords (%d of %d): %s\n",
			len(resp.MissingKeywords), resp.MissingCount, strings.Join(resp.MissingKeywords, ", "))
	default:
		fmt.Fprintf(&b, "Missing keywords (%d): %s\n",
			resp.MissingCount, strings.Join(resp.MissingKeywords, ", "))
	}
	return b.String()
}

func renderReportTables(resp api.AnalysisResponse) string {
	var b strings.Builder

	summary := [][]string{
		{"Similarity", formatPercent(resp.Similarity)},
		{"Verdict", string(resp.Verdict)},
		{"Missing keywords", strconv.Itoa(resp.MissingCount)},
		{"Resume tokens", strconv.Itoa(resp.ResumeTokens)},
		{"Job description tokens", strconv.Itoa(resp.JobTokens)},
	}
	b.WriteString(renderTable([]string{"Metric", "Value"}, summary, []columnAlignment{alignLeft, alignRight}))
	b.WriteString("\n")
	b.WriteString(resp.Message)
	b.WriteString("\n")

	if len(resp.MissingKeywords) == 0 {
		return b.String()
	}

	rows := make([][]string, len(resp.MissingKeywords))
	for i, keyword := range resp.MissingKeywords {
		rows[i] = []string{strconv.Itoa(i + 1), keyword}
	}
	b.WriteString("\n")
	b.WriteString(renderTable([]string{"#", "Missing keyword"}, rows, []columnAlignment{alignRight, alignLeft}))
	b.WriteString("\n")
	if resp.Truncated {
		fmt.Fprintf(&b, "... and %d more\n", resp.MissingCount-len(resp.MissingKeywords))
	}
	return b.String()
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64) + "%"
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
