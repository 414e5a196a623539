package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookie = "lingobridge_session"
	sessionTTL    = 30 * time.Minute
)

type session struct {
	submission *Submission
	lastSeen   time.Time
}

// sessions keeps one Submission per browser, so a new submit from a browser
// supersedes that browser's request in flight. Idle entries expire after ttl.
type sessions struct {
	repo GrammarRepo
	opts []SubmissionOption
	ttl  time.Duration
	now  func() time.Time

	mu   sync.Mutex
	byId map[string]*session
}

func newSessions(repo GrammarRepo, ttl time.Duration, opts ...SubmissionOption) *sessions {
	return &sessions{repo: repo, opts: opts, ttl: ttl, now: time.Now, byId: map[string]*session{}}
}

// get returns the caller's Submission, issuing a session cookie on first use.
func (s *sessions) get(w http.ResponseWriter, r *http.Request) (*Submission, error) {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed.String()
		}
	}

	if id == "" {
		newId, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		id = newId.String()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	sess, ok := s.byId[id]
	if !ok {
		sess = &session{submission: NewSubmission(s.repo, s.opts...)}
		s.byId[id] = sess
	}
	sess.lastSeen = now

	return sess.submission, nil
}

// sweep must be called with mu held.
func (s *sessions) sweep(now time.Time) {
	for id, sess := range s.byId {
		if now.Sub(sess.lastSeen) > s.ttl {
			sess.submission.Reset()
			delete(s.byId, id)
		}
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byId)
}
