package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	ErrNoToken              = errors.New("session: no active token")
	ErrPathRequired         = errors.New("session: state path is required")
	ErrAlreadyImpersonating = errors.New("session: impersonation already in progress")
	ErrNoHandshake          = errors.New("session: no impersonation handshake in progress")
	ErrNotImpersonating     = errors.New("session: not impersonating")
)

// Phase tracks how far an impersonation handshake has progressed.
type Phase string

const (
	// PhaseTokenSaved means the admin token has been copied aside but
	// no grant token has been installed yet. A persisted record in this
	// phase is a crash artifact and is rolled back on the next load.
	PhaseTokenSaved Phase = "token_saved"
	// PhaseImpersonating means the grant token is the active token.
	PhaseImpersonating Phase = "impersonating"
)

// Record is the single structured impersonation record. It replaces
// scattered per-key bookkeeping so partial handshakes are detectable.
type Record struct {
	Phase            Phase     `json:"phase"`
	AdminToken       string    `json:"admin_token"`
	Token            string    `json:"impersonation_token,omitempty"`
	ImpersonatorID   int64     `json:"impersonator_id,omitempty"`
	ImpersonatorName string    `json:"impersonator_name,omitempty"`
	TargetID         int64     `json:"target_id"`
	TargetRole       string    `json:"target_role,omitempty"`
	StartedAt        time.Time `json:"started_at"`
}

// State is the whole persisted session document.
type State struct {
	Token         string  `json:"token,omitempty"`
	Impersonation *Record `json:"impersonation,omitempty"`
}

// Store owns the operator session: the active bearer token and the
// impersonation handshake. Every component reads identity and token
// state through it, never through the underlying file.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	state  State
}

// Open loads (or initializes) the session file. A handshake left in
// the token_saved phase by a crash is rolled back before any caller
// can observe it.
func Open(path string, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}
	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("session: read state: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("session: decode state: %w", err)
	}

	if rec := s.state.Impersonation; rec != nil && rec.Phase == PhaseTokenSaved {
		if logger != nil {
			logger.Warn("rolling back interrupted impersonation handshake",
				"target_id", rec.TargetID, "started_at", rec.StartedAt)
		}
		s.state.Token = rec.AdminToken
		s.state.Impersonation = nil
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Token returns the active bearer token. Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// SetToken installs tok as the active session token.
func (s *Store) SetToken(tok string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = strings.TrimSpace(tok)
	return s.save()
}

// Clear drops the whole session, impersonation record included.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.save()
}

// IsImpersonating reports whether a completed handshake is active.
func (s *Store) IsImpersonating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.state.Impersonation
	return rec != nil && rec.Phase == PhaseImpersonating
}

// Impersonation returns a copy of the current record, or nil.
func (s *Store) Impersonation() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Impersonation == nil {
		return nil
	}
	rec := *s.state.Impersonation
	return &rec
}

// BeginImpersonation copies the admin token aside and opens the
// handshake. The active token is untouched, so an aborted flow leaves
// the admin session exactly as it was.
func (s *Store) BeginImpersonation(targetID int64, targetRole string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Token == "" {
		return ErrNoToken
	}
	if s.state.Impersonation != nil {
		return ErrAlreadyImpersonating
	}
	s.state.Impersonation = &Record{
		Phase:      PhaseTokenSaved,
		AdminToken: s.state.Token,
		TargetID:   targetID,
		TargetRole: targetRole,
		StartedAt:  time.Now().UTC(),
	}
	return s.save()
}

// CompleteImpersonation installs the grant token as the active session
// token and records who is impersonating. Subsequent requests
// authenticate as the target user.
func (s *Store) CompleteImpersonation(token string, impersonatorID int64, impersonatorName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.state.Impersonation
	if rec == nil || rec.Phase != PhaseTokenSaved {
		return ErrNoHandshake
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("session: impersonation token is required")
	}
	rec.Phase = PhaseImpersonating
	rec.Token = token
	rec.ImpersonatorID = impersonatorID
	rec.ImpersonatorName = impersonatorName
	s.state.Token = token
	return s.save()
}

// AbortImpersonation discards an open handshake. Only valid while the
// record is still in the token_saved phase.
func (s *Store) AbortImpersonation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.state.Impersonation
	if rec == nil || rec.Phase != PhaseTokenSaved {
		return ErrNoHandshake
	}
	s.state.Impersonation = nil
	return s.save()
}

// StopImpersonation restores the admin token and closes the record.
func (s *Store) StopImpersonation() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.state.Impersonation
	if rec == nil || rec.Phase != PhaseImpersonating {
		return ErrNotImpersonating
	}
	s.state.Token = rec.AdminToken
	s.state.Impersonation = nil
	return s.save()
}

func (s *Store) save() error {
	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode state: %w", err)
	}
	if err := writeFileAtomic(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("session: persist state: %w", err)
	}
	return nil
}
