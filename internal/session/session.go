// Package session holds the working state of one assistant session: the
// certification catalog, business rules, uploaded CVs, review drafts, and the
// latest recommendation results. Committed state is persisted through a
// store.Store; in-flight state (uploads, unsubmitted drafts) stays in memory.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/catalog"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/review"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/rules"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/store"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// Session is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	store store.Store

	catalog             []types.CertificateCatalogEntry
	rules               []string
	uploadedCvs         []types.UploadedCv
	drafts              []types.DraftCv
	submitted           []types.DraftCv
	lastRecommendations *types.RecommendationResult
	lastFingerprint     string
	chatHistory         []types.ChatMessage
}

// Load hydrates a session from the store. A missing or corrupt record falls
// back to its default without failing the load: the catalog falls back to the
// built-in set (and is persisted once so later edits start from a stored
// copy), rules fall back to the defaults, recommendations to none. Chat
// history always starts empty; a new session is a fresh conversation.
func Load(ctx context.Context, s store.Store) (*Session, error) {
	sess := &Session{
		store:   s,
		catalog: catalog.Default(),
		rules:   append([]string(nil), rules.DefaultRules...),
	}

	var storedCatalog []types.CertificateCatalogEntry
	ok, err := store.GetJSON(ctx, s, store.KeyCertCatalog, &storedCatalog)
	switch {
	case err != nil:
		log.Printf("failed to load stored catalog, using default: %v", err)
	case ok && len(storedCatalog) > 0:
		sess.catalog = storedCatalog
	default:
		if err := store.SetJSON(ctx, s, store.KeyCertCatalog, sess.catalog); err != nil {
			return nil, err
		}
	}

	var storedRules []string
	ok, err = store.GetJSON(ctx, s, store.KeyUserRules, &storedRules)
	switch {
	case err != nil:
		log.Printf("failed to load stored rules, using defaults: %v", err)
	case ok && len(storedRules) > 0:
		sess.rules = storedRules
	}

	var storedRecs types.RecommendationResult
	ok, err = store.GetJSON(ctx, s, store.KeyLastRecommendations, &storedRecs)
	switch {
	case err != nil:
		log.Printf("failed to load stored recommendations, ignoring: %v", err)
	case ok:
		sess.lastRecommendations = &storedRecs
	}

	if err := s.Delete(ctx, store.KeyChatHistory); err != nil {
		log.Printf("failed to clear stored chat history: %v", err)
	}

	return sess, nil
}

// Catalog returns a copy of the active certification catalog.
func (s *Session) Catalog() []types.CertificateCatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.CertificateCatalogEntry(nil), s.catalog...)
}

// SetCatalog validates and replaces the catalog wholesale, then persists it.
func (s *Session) SetCatalog(ctx context.Context, entries []types.CertificateCatalogEntry) error {
	if err := catalog.Validate(entries); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.SetJSON(ctx, s.store, store.KeyCertCatalog, entries); err != nil {
		return err
	}
	s.catalog = append([]types.CertificateCatalogEntry(nil), entries...)
	return nil
}

// Rules returns a copy of the active business rules.
func (s *Session) Rules() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rules...)
}

// SetRules replaces the rule set wholesale and persists it. An empty set is
// valid and clears all rules.
func (s *Session) SetRules(ctx context.Context, normalized []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.SetJSON(ctx, s.store, store.KeyUserRules, normalized); err != nil {
		return err
	}
	s.rules = append([]string(nil), normalized...)
	return nil
}

// UploadedCvs returns a copy of the CVs processed in this session.
func (s *Session) UploadedCvs() []types.UploadedCv {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.UploadedCv(nil), s.uploadedCvs...)
}

// LastRecommendations returns the latest recommendation set, or nil when no
// analysis has completed yet.
func (s *Session) LastRecommendations() *types.RecommendationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRecommendations == nil {
		return nil
	}
	out := *s.lastRecommendations
	return &out
}

// CheckSelection rejects a file selection identical to the one most recently
// analyzed.
func (s *Session) CheckSelection(names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return review.CheckSelection(names, s.lastFingerprint)
}

// RecordAnalysis commits a completed analysis: the uploaded CVs and drafts
// replace the session's working set wholesale, the recommendations are
// persisted, and the selection fingerprint is updated for the staleness
// guard. Nothing is committed when persistence fails.
func (s *Session) RecordAnalysis(ctx context.Context, cvs []types.UploadedCv, drafts []types.DraftCv, recs *types.RecommendationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.SetJSON(ctx, s.store, store.KeyLastRecommendations, recs); err != nil {
		return err
	}

	names := make([]string, len(cvs))
	for i, cv := range cvs {
		names[i] = cv.Name
	}

	s.uploadedCvs = append([]types.UploadedCv(nil), cvs...)
	s.drafts = append([]types.DraftCv(nil), drafts...)
	s.lastRecommendations = recs
	s.lastFingerprint = review.Fingerprint(names)
	return nil
}

// Drafts returns a copy of the editable drafts from the latest analysis.
func (s *Session) Drafts() []types.DraftCv {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.DraftCv(nil), s.drafts...)
}

// UpdateDraft applies edits to the named draft and returns the updated copy.
func (s *Session) UpdateDraft(name string, edits review.DraftEdits) (types.DraftCv, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, draft := range s.drafts {
		if draft.Name == name {
			s.drafts[i] = review.ApplyEdits(draft, edits)
			return s.drafts[i], true
		}
	}
	return types.DraftCv{}, false
}

// Submit merges the current drafts into the submitted set by name and
// returns a copy of the result.
func (s *Session) Submit() []types.DraftCv {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitted = review.Merge(s.submitted, s.drafts)
	return append([]types.DraftCv(nil), s.submitted...)
}

// Submitted returns a copy of the accumulated submitted records.
func (s *Session) Submitted() []types.DraftCv {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.DraftCv(nil), s.submitted...)
}

// ChatHistory returns a copy of the conversation so far.
func (s *Session) ChatHistory() []types.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ChatMessage(nil), s.chatHistory...)
}

// SetChatHistory replaces the conversation and persists it.
func (s *Session) SetChatHistory(ctx context.Context, history []types.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := store.SetJSON(ctx, s.store, store.KeyChatHistory, history); err != nil {
		return err
	}
	s.chatHistory = append([]types.ChatMessage(nil), history...)
	return nil
}

// AppendChatNote adds an assistant-authored notice to the conversation, used
// for system events like a rules update acknowledgment.
func (s *Session) AppendChatNote(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.chatHistory, types.ChatMessage{Text: text, IsUser: false})
	if err := store.SetJSON(ctx, s.store, store.KeyChatHistory, history); err != nil {
		return err
	}
	s.chatHistory = history
	return nil
}
