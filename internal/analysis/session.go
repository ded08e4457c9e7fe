package analysis

import (
	"sync"

	"github.com/rasidhq/rasid/internal/quality"
)

// Session holds the intermediate results of one analysis flow: the schema
// analysis from the uploaded descriptor, optionally enriched with the data
// quality report once the data file is processed.
type Session struct {
	Schema  *SchemaAnalysis
	Quality *quality.Report
}

// Sessions is an in-memory registry of analysis sessions keyed by the
// schema analysis ID. Safe for concurrent use.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: map[string]*Session{}}
}

// Put registers a fresh session for the given schema analysis.
func (s *Sessions) Put(schema *SchemaAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[schema.ID] = &Session{Schema: schema}
}

// Get retrieves a session by its analysis ID.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SetQuality attaches a data quality report to an existing session.
func (s *Sessions) SetQuality(id string, report *quality.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Quality = report
	return nil
}
