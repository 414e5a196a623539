package components

import (
	"strconv"

	"github.com/felixbrock/lingobridge/internal/app"
	"github.com/felixbrock/lingobridge/internal/domain"
)

type scoreEntry struct {
	Label string
	Value string
}

func scores(s domain.Score) []scoreEntry {
	return []scoreEntry{
		{Label: "Grammar", Value: formatScore(s.Grammar)},
		{Label: "Vocabulary", Value: formatScore(s.Vocabulary)},
		{Label: "Fluency", Value: formatScore(s.Fluency)},
		{Label: "Overall", Value: formatScore(s.Overall)},
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isLoading(state app.SubmissionState) bool {
	_, ok := state.(app.Loading)
	return ok
}

func failure(state app.SubmissionState) (string, bool) {
	failed, ok := state.(app.Failed)
	return failed.Message, ok
}

func result(state app.SubmissionState) (domain.Feedback, bool) {
	succeeded, ok := state.(app.Succeeded)
	return succeeded.Feedback, ok
}
