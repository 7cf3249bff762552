package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/catalog"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/review"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/rules"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/store"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

func TestLoad_Defaults(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	sess, err := Load(ctx, mem)
	require.NoError(t, err)

	assert.Equal(t, catalog.Default(), sess.Catalog())
	assert.Equal(t, rules.DefaultRules, sess.Rules())
	assert.Nil(t, sess.LastRecommendations())
	assert.Empty(t, sess.ChatHistory())

	// The default catalog is persisted once so later edits start from a
	// stored copy
	var stored []types.CertificateCatalogEntry
	ok, err := store.GetJSON(ctx, mem, store.KeyCertCatalog, &stored)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, stored, len(catalog.Default()))
}

func TestLoad_RestoresStoredState(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	storedRules := []string{"only cloud certs"}
	require.NoError(t, store.SetJSON(ctx, mem, store.KeyUserRules, storedRules))
	recs := types.RecommendationResult{Candidates: []types.CandidateRecommendations{
		{CandidateName: "Jane", Recommendations: []types.Recommendation{}},
	}}
	require.NoError(t, store.SetJSON(ctx, mem, store.KeyLastRecommendations, recs))

	sess, err := Load(ctx, mem)
	require.NoError(t, err)

	assert.Equal(t, storedRules, sess.Rules())
	require.NotNil(t, sess.LastRecommendations())
	assert.Equal(t, "Jane", sess.LastRecommendations().Candidates[0].CandidateName)
}

func TestLoad_CorruptRecordsFallBack(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, store.KeyCertCatalog, []byte(`{broken`)))
	require.NoError(t, mem.Set(ctx, store.KeyUserRules, []byte(`"not an array`)))
	require.NoError(t, mem.Set(ctx, store.KeyLastRecommendations, []byte(`[42`)))

	sess, err := Load(ctx, mem)
	require.NoError(t, err, "corrupt stored state must not fail the load")

	assert.Equal(t, catalog.Default(), sess.Catalog())
	assert.Equal(t, rules.DefaultRules, sess.Rules())
	assert.Nil(t, sess.LastRecommendations())
}

func TestLoad_ClearsChatHistory(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, store.SetJSON(ctx, mem, store.KeyChatHistory, []types.ChatMessage{
		{Text: "old conversation", IsUser: true},
	}))

	sess, err := Load(ctx, mem)
	require.NoError(t, err)
	assert.Empty(t, sess.ChatHistory())

	_, ok, err := mem.Get(ctx, store.KeyChatHistory)
	require.NoError(t, err)
	assert.False(t, ok, "stored history is removed at session start")
}

func TestSetRules_Persists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	sess, err := Load(ctx, mem)
	require.NoError(t, err)

	require.NoError(t, sess.SetRules(ctx, []string{"rule a", "rule b"}))
	assert.Equal(t, []string{"rule a", "rule b"}, sess.Rules())

	var stored []string
	_, err = store.GetJSON(ctx, mem, store.KeyUserRules, &stored)
	require.NoError(t, err)
	assert.Equal(t, []string{"rule a", "rule b"}, stored)

	// Clearing all rules is allowed
	require.NoError(t, sess.SetRules(ctx, []string{}))
	assert.Empty(t, sess.Rules())
}

func TestSetCatalog_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	sess, err := Load(ctx, store.NewMemory())
	require.NoError(t, err)

	err = sess.SetCatalog(ctx, []types.CertificateCatalogEntry{{ID: "x"}})
	require.Error(t, err)
	assert.Equal(t, catalog.Default(), sess.Catalog(), "invalid catalog leaves the prior one active")
}

func analysisFixture() ([]types.UploadedCv, []types.DraftCv, *types.RecommendationResult) {
	rec := types.EmptyCvRecord()
	cvs := []types.UploadedCv{{Name: "a.pdf", RawText: "text", Structured: rec}}
	drafts := []types.DraftCv{review.ProjectDraft("a.pdf", rec)}
	recs := &types.RecommendationResult{Candidates: []types.CandidateRecommendations{
		{CandidateName: "a.pdf", Recommendations: []types.Recommendation{}},
	}}
	return cvs, drafts, recs
}

func TestRecordAnalysis(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	sess, err := Load(ctx, mem)
	require.NoError(t, err)

	cvs, drafts, recs := analysisFixture()
	require.NoError(t, sess.RecordAnalysis(ctx, cvs, drafts, recs))

	assert.Equal(t, cvs, sess.UploadedCvs())
	assert.Equal(t, drafts, sess.Drafts())
	require.NotNil(t, sess.LastRecommendations())

	var stored types.RecommendationResult
	ok, err := store.GetJSON(ctx, mem, store.KeyLastRecommendations, &stored)
	require.NoError(t, err)
	assert.True(t, ok)

	// The same selection is now rejected
	err = sess.CheckSelection([]string{"a.pdf"})
	var staleErr *review.StaleSelectionError
	require.ErrorAs(t, err, &staleErr)
	assert.NoError(t, sess.CheckSelection([]string{"b.pdf"}))
}

func TestUpdateDraft(t *testing.T) {
	ctx := context.Background()
	sess, err := Load(ctx, store.NewMemory())
	require.NoError(t, err)

	cvs, drafts, recs := analysisFixture()
	require.NoError(t, sess.RecordAnalysis(ctx, cvs, drafts, recs))

	updated, ok := sess.UpdateDraft("a.pdf", review.DraftEdits{
		Skills: []types.DraftSkill{{Title: "Go"}},
	})
	require.True(t, ok)
	assert.Equal(t, []types.DraftSkill{{Title: "Go"}}, updated.Skills)
	assert.Equal(t, updated, sess.Drafts()[0])

	_, ok = sess.UpdateDraft("missing.pdf", review.DraftEdits{})
	assert.False(t, ok)
}

func TestSubmit_MergesByName(t *testing.T) {
	ctx := context.Background()
	sess, err := Load(ctx, store.NewMemory())
	require.NoError(t, err)

	cvs, drafts, recs := analysisFixture()
	require.NoError(t, sess.RecordAnalysis(ctx, cvs, drafts, recs))

	first := sess.Submit()
	require.Len(t, first, 1)

	// Re-submitting the same drafts does not duplicate records
	second := sess.Submit()
	assert.Equal(t, first, second)
	assert.Equal(t, second, sess.Submitted())
}

func TestChatHistory(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	sess, err := Load(ctx, mem)
	require.NoError(t, err)

	history := []types.ChatMessage{
		{Text: "hello", IsUser: true},
		{Text: "hi!", IsUser: false},
	}
	require.NoError(t, sess.SetChatHistory(ctx, history))
	assert.Equal(t, history, sess.ChatHistory())

	require.NoError(t, sess.AppendChatNote(ctx, "I've updated my recommendation logic based on your new rules."))
	got := sess.ChatHistory()
	require.Len(t, got, 3)
	assert.False(t, got[2].IsUser)

	var stored []types.ChatMessage
	_, err = store.GetJSON(ctx, mem, store.KeyChatHistory, &stored)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}
