// Package formatter prints Quick Fix feedback for the terminal.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/felixbrock/lingobridge/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidateFormat reports whether DisplayFeedback understands format.
func ValidateFormat(format string) error {
	switch format {
	case FormatHuman, FormatJSON, FormatYAML, "":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want human, json or yaml)", format)
	}
}

// DisplayFeedback writes feedback to w in the given format.
func DisplayFeedback(w io.Writer, feedback domain.Feedback, format string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return displayJSON(w, feedback)
	case FormatYAML:
		return displayYAML(w, feedback)
	default:
		displayHuman(w, feedback)
		return nil
	}
}

func displayJSON(w io.Writer, feedback domain.Feedback) error {
	output, err := json.MarshalIndent(feedback, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, feedback domain.Feedback) error {
	output, err := yaml.Marshal(feedback)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, feedback domain.Feedback) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)

	green.Fprintln(w, "Minimal correction")
	fmt.Fprintf(w, "   %s\n\n", feedback.MinimalCorrection)

	cyan.Fprintln(w, "More natural version")
	fmt.Fprintf(w, "   %s\n\n", feedback.NaturalVersion)

	fmt.Fprintf(w, "   Grammar %s   Vocabulary %s   Fluency %s   Overall %s\n\n",
		score(feedback.Score.Grammar),
		score(feedback.Score.Vocabulary),
		score(feedback.Score.Fluency),
		score(feedback.Score.Overall))

	if len(feedback.Issues) > 0 {
		yellow.Fprintln(w, "Issue details")
		for i, issue := range feedback.Issues {
			fmt.Fprintf(w, "   %d. %s - %s\n", i+1, color.New(color.Bold).Sprint(issue.IssueType), issue.ExplanationZh)
			fmt.Fprintf(w, "      Suggestion: %s\n", color.GreenString(issue.Suggestion))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "%s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func score(v float64) string {
	return color.New(color.Bold).Sprintf("%g", v)
}
