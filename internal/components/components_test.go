package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/felixbrock/lingobridge/internal/app"
	"github.com/felixbrock/lingobridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var parkFeedback = domain.Feedback{
	Original:          "Yesterday I go to park with my friend.",
	MinimalCorrection: "Yesterday I went to the park with my friend.",
	NaturalVersion:    "I went to the park with my friend yesterday.",
	Issues: []domain.Issue{
		{Index: 0, Span: domain.Span{Start: 10, End: 12}, IssueType: "tense", ExplanationZh: "应使用过去时", Suggestion: "went"},
	},
	Score: domain.Score{Grammar: 80, Vocabulary: 90, Fluency: 85, Overall: 85},
}

func TestQuickFix_Idle(t *testing.T) {
	html := render(t, QuickFix(app.QuickFixView{State: app.Idle{}}))

	assert.Contains(t, html, `<button type="submit">`)
	assert.Contains(t, html, "Submit &amp; check")
	assert.NotContains(t, html, `class="error"`)
	assert.NotContains(t, html, "<h2>Result</h2>")
}

func TestQuickFix_Loading(t *testing.T) {
	html := render(t, QuickFix(app.QuickFixView{Sentence: "She go home.", State: app.Loading{}}))

	assert.Contains(t, html, `<button type="submit" disabled>Analyzing...</button>`)
	assert.Contains(t, html, "She go home.</textarea>")
	assert.NotContains(t, html, "<h2>Result</h2>")
}

func TestQuickFix_Failed(t *testing.T) {
	html := render(t, QuickFix(app.QuickFixView{State: app.Failed{Message: "too long"}}))

	assert.Contains(t, html, `<div class="error">Error: too long</div>`)
	assert.Contains(t, html, `<button type="submit">`)
	assert.NotContains(t, html, "<h2>Result</h2>")
}

func TestQuickFix_Succeeded(t *testing.T) {
	html := render(t, QuickFix(app.QuickFixView{Sentence: parkFeedback.Original, State: app.Succeeded{Feedback: parkFeedback}}))

	assert.Contains(t, html, "<p>Yesterday I went to the park with my friend.</p>")
	assert.Contains(t, html, "<p>I went to the park with my friend yesterday.</p>")
	for _, s := range []string{
		"<span>Grammar</span> <strong>80</strong>",
		"<span>Vocabulary</span> <strong>90</strong>",
		"<span>Fluency</span> <strong>85</strong>",
		"<span>Overall</span> <strong>85</strong>",
	} {
		assert.Contains(t, html, s)
	}

	assert.Equal(t, 1, strings.Count(html, "<li>"))
	assert.Contains(t, html, "<strong>tense</strong>")
	assert.Contains(t, html, "<span>应使用过去时</span>")
	assert.Contains(t, html, "Suggestion: <code>went</code>")
	assert.NotContains(t, html, `class="error"`)
}

func TestResult_IssuesKeepBackendOrder(t *testing.T) {
	feedback := parkFeedback
	feedback.Issues = []domain.Issue{
		{Index: 2, IssueType: "spelling", Suggestion: "third"},
		{Index: 0, IssueType: "tense", Suggestion: "first"},
		{Index: 1, IssueType: "article", Suggestion: "second"},
		{Index: 1, IssueType: "article", Suggestion: "second"},
	}

	html := render(t, Result(feedback))

	assert.Equal(t, 4, strings.Count(html, "<li>"))
	third := strings.Index(html, "<code>third</code>")
	first := strings.Index(html, "<code>first</code>")
	second := strings.Index(html, "<code>second</code>")
	assert.True(t, third < first && first < second, "issues rendered out of order")
}

func TestResult_NoIssues(t *testing.T) {
	feedback := parkFeedback
	feedback.Issues = nil

	html := render(t, Result(feedback))

	assert.NotContains(t, html, "Issue details")
	assert.NotContains(t, html, "<ol>")
	assert.Contains(t, html, "<strong>85</strong>")
}

func TestResult_FractionalScores(t *testing.T) {
	feedback := parkFeedback
	feedback.Score = domain.Score{Grammar: 72.5, Vocabulary: 0, Fluency: 100, Overall: 57.25}

	html := render(t, Result(feedback))

	assert.Contains(t, html, "<strong>72.5</strong>")
	assert.Contains(t, html, "<strong>0</strong>")
	assert.Contains(t, html, "<strong>57.25</strong>")
}

func TestQuickFix_EscapesUserText(t *testing.T) {
	html := render(t, QuickFix(app.QuickFixView{
		Sentence: `<script>alert(1)</script>`,
		State:    app.Failed{Message: `<b>bad</b>`},
	}))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Error: &lt;b&gt;bad&lt;/b&gt;")
}

func TestIndex_WrapsQuickFix(t *testing.T) {
	html := render(t, Index(app.QuickFixView{State: app.Idle{}}))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<h1>LingoBridge · Quick Fix</h1>")
	assert.Contains(t, html, `<div id="quickfix">`)
	assert.Contains(t, html, `href="/static/styles.css"`)
}

func TestErrorPage(t *testing.T) {
	html := render(t, ErrorPage(429, "Too many requests", "Slow down."))

	assert.Contains(t, html, "<h2>429 Too many requests</h2>")
	assert.Contains(t, html, `<p class="error">Slow down.</p>`)
}
