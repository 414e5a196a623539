package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/felixbrock/lingobridge/internal/app"
	"github.com/felixbrock/lingobridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleFeedback = `{
	"original": "Yesterday I go to park with my friend.",
	"minimal_correction": "Yesterday I went to the park with my friend.",
	"natural_version": "I went to the park with my friend yesterday.",
	"issues": [
		{"index": 0, "span": {"start": 10, "end": 12}, "issue_type": "tense", "explanation_zh": "过去时", "suggestion": "went"}
	],
	"score": {"grammar": 80, "vocabulary": 90, "fluency": 85, "overall": 85}
}`

func backend(t *testing.T, status int, body string) (*httptest.Server, *[]byte) {
	t.Helper()
	var received []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func quickFix(sentence string) domain.GrammarRequest {
	return domain.GrammarRequest{Sentence: sentence, TaskType: domain.QuickFix}
}

func TestGrammarRepo_Check_Success(t *testing.T) {
	srv, received := backend(t, http.StatusOK, exampleFeedback)
	repo := GrammarRepo{Url: srv.URL}

	feedback, err := repo.Check(context.Background(), quickFix("Yesterday I go to park with my friend."))
	require.NoError(t, err)

	assert.JSONEq(t, `{"sentence":"Yesterday I go to park with my friend.","task_type":"quick_fix"}`, string(*received))
	assert.Equal(t, "Yesterday I went to the park with my friend.", feedback.MinimalCorrection)
	assert.Equal(t, "I went to the park with my friend yesterday.", feedback.NaturalVersion)
	require.Len(t, feedback.Issues, 1)
	assert.Equal(t, domain.Issue{
		Index:         0,
		Span:          domain.Span{Start: 10, End: 12},
		IssueType:     "tense",
		ExplanationZh: "过去时",
		Suggestion:    "went",
	}, feedback.Issues[0])
	assert.Equal(t, domain.Score{Grammar: 80, Vocabulary: 90, Fluency: 85, Overall: 85}, feedback.Score)
}

func TestGrammarRepo_Check_SendsExtraContextAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"level": "A2"}, body["extra_context"])

		_, _ = w.Write([]byte(exampleFeedback))
	}))
	defer srv.Close()

	repo := GrammarRepo{Url: srv.URL, BaseHeaders: []string{"Authorization: Bearer secret"}}
	req := quickFix("She go home.")
	req.ExtraContext = map[string]any{"level": "A2"}

	_, err := repo.Check(context.Background(), req)
	require.NoError(t, err)
}

func TestGrammarRepo_Check_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"detail message", http.StatusBadRequest, `{"detail":{"code":"content_flagged","message":"too long"}}`, "too long"},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, ""},
		{"empty body", http.StatusBadGateway, ``, ""},
		{"string detail", http.StatusNotFound, `{"detail":"Not Found"}`, ""},
		{"validation list", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","sentence"],"msg":"field required"}]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := backend(t, tt.status, tt.body)
			repo := GrammarRepo{Url: srv.URL}

			feedback, err := repo.Check(context.Background(), quickFix("Some sentence."))
			require.Error(t, err)
			assert.Nil(t, feedback)

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message())
		})
	}
}

func TestGrammarRepo_Check_MalformedSuccessBody(t *testing.T) {
	srv, _ := backend(t, http.StatusOK, `{"original": `)
	repo := GrammarRepo{Url: srv.URL}

	_, err := repo.Check(context.Background(), quickFix("Some sentence."))
	require.Error(t, err)

	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.NotEmpty(t, err.Error())
}

func TestGrammarRepo_Check_NullBody(t *testing.T) {
	srv, _ := backend(t, http.StatusOK, `null`)
	repo := GrammarRepo{Url: srv.URL}

	_, err := repo.Check(context.Background(), quickFix("Some sentence."))
	assert.ErrorIs(t, err, app.ErrEmptyJSON)
}

func TestGrammarRepo_Check_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := GrammarRepo{Url: url}
	_, err := repo.Check(context.Background(), quickFix("Some sentence."))
	require.Error(t, err)

	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), url)
}

func TestGrammarRepo_Check_CancelledContext(t *testing.T) {
	srv, _ := backend(t, http.StatusOK, exampleFeedback)
	repo := GrammarRepo{Url: srv.URL}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Check(ctx, quickFix("Some sentence."))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHealthRepo_Check(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		assert.NoError(t, HealthRepo{Url: srv.URL}.Check(context.Background()))
	})

	t.Run("degraded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
		}))
		defer srv.Close()

		err := HealthRepo{Url: srv.URL}.Check(context.Background())
		assert.EqualError(t, err, `backend reported status "degraded"`)
	})

	t.Run("unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := HealthRepo{Url: srv.URL}.Check(context.Background())
		var apiErr *domain.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	})
}
