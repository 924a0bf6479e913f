package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
)

// printReport renders one report as readable text.
func printReport(out io.Writer, report domain.SearchReport) {
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Instruction: %s\n", report.Instruction)

	fmt.Fprintln(out, "\nParsed parameters:")
	printParam(out, "Voicing", string(report.Parameters.Voicing))
	printParam(out, "Theme", report.Parameters.Theme)
	printParam(out, "Technique", report.Parameters.Technique)
	printParam(out, "Skill level", string(report.Parameters.SkillLevel))
	printParam(out, "Ensemble", report.Parameters.Ensemble)
	printParam(out, "Keywords", strings.Join(report.Parameters.Keywords, ", "))

	fmt.Fprintf(out, "\nFound %d result(s) [%s]:\n", report.ResultCount, report.Origin)
	for i, rec := range report.Results {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, rec.Title)
		printParam(out, "   Composer", rec.Composer)
		printParam(out, "   Voicing", rec.Voicing)
		printParam(out, "   Theme", rec.Theme)
		printParam(out, "   Technique", rec.Technique)
		printParam(out, "   Difficulty", rec.Difficulty)
		printParam(out, "   Description", rec.Description)
		printParam(out, "   Source", rec.SourceURL)
	}
	fmt.Fprintln(out, rule)
}

func printParam(out io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", label, value)
}
