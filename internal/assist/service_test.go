package assist

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/llm"
	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

func testKey() taxonomy.Key {
	return taxonomy.Key{
		Profession: taxonomy.Option{ID: 1, Name: "Insurance"},
		Department: taxonomy.Option{ID: 2, Name: "Claims"},
		Role:       taxonomy.Option{ID: 3, Name: "Claims Adjuster"},
	}
}

func newTestService(t *testing.T, p llm.Provider) *Service {
	cfg := DefaultConfig()
	cfg.RetryWait = time.Millisecond
	return NewService(p, cfg, logger.NewTest(t))
}

func itemsReply(items ...string) llm.MockResponse {
	b, _ := json.Marshal(map[string]any{"items": items})
	return llm.MockResponse{Content: b}
}

func TestSuggestList_KeepsFilteredAIItems(t *testing.T) {
	mock := llm.NewMockProvider(itemsReply(
		"Close 12 files per day",
		"Escalate claims older than 30 days",
		"Reply to brokers within 4 hours",
		"  ",
		"Audit 5 settlements per week",
		"Update the reserve log by 5 PM",
		"Run a 15 minute huddle each morning",
		"Share a weekly backlog count",
	))
	s := newTestService(t, mock)

	got, err := s.SuggestList(context.Background(), lists.DayToDay, testKey())
	require.NoError(t, err)

	assert.Equal(t, provenance.AI, got.Source)
	assert.Len(t, got.Items, 6)
	assert.NotContains(t, got.Items, "Escalate claims older than 30 days")

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Equal(t, ItemsSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Role: Claims Adjuster")
	assert.Contains(t, call.Messages[0].Content, "8-10 SMART day-to-day")
}

func TestSuggestList_TooFewItemsUsesDefaultsTaggedAI(t *testing.T) {
	mock := llm.NewMockProvider(itemsReply(
		"Close 12 files per day",
		"Reply to brokers within 4 hours",
		"Audit 5 settlements per week",
		"Review insurance renewals",
	))
	s := newTestService(t, mock)

	got, err := s.SuggestList(context.Background(), lists.KRAs, testKey())
	require.NoError(t, err)

	assert.Equal(t, provenance.AI, got.Source)
	assert.Equal(t, DefaultKRAs("Claims Adjuster"), got.Items)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "6-8 SMART KRAs")
}

func TestSuggestList_FailureReturnsDefaults(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
		llm.MockResponse{Err: &llm.ErrRateLimit{}},
	)
	s := newTestService(t, mock)

	got, err := s.SuggestList(context.Background(), lists.DayToDay, testKey())
	require.NoError(t, err)

	assert.Equal(t, provenance.Default, got.Source)
	assert.Equal(t, DefaultDayToDay("Claims Adjuster", "Claims"), got.Items)
	assert.Len(t, got.Items, 10)
	assert.Len(t, mock.Calls, 2)
}

func TestSuggestList_SecondAttemptSucceeds(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`not json at all`)},
		itemsReply("a 1", "b 2", "c 3", "d 4", "e 5"),
	)
	s := newTestService(t, mock)

	got, err := s.SuggestList(context.Background(), lists.KRAs, testKey())
	require.NoError(t, err)
	assert.Equal(t, provenance.AI, got.Source)
	assert.Equal(t, []string{"a 1", "b 2", "c 3", "d 4", "e 5"}, got.Items)
	assert.Len(t, mock.Calls, 2)
}

func TestSuggestList_TruncatedReplyIsNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{}},
		itemsReply("never", "reached"),
	)
	s := newTestService(t, mock)

	got, err := s.SuggestList(context.Background(), lists.KRAs, testKey())
	require.NoError(t, err)
	assert.Equal(t, provenance.Default, got.Source)
	assert.Len(t, mock.Calls, 1)
}

func TestSuggestList_NilProvider(t *testing.T) {
	s := NewService(nil, DefaultConfig(), nil)
	got, err := s.SuggestList(context.Background(), lists.KRAs, testKey())
	require.NoError(t, err)
	assert.Equal(t, provenance.Default, got.Source)
	assert.Len(t, got.Items, 8)
}

func TestSuggestList_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider(llm.MockResponse{Err: context.Canceled})
	s := newTestService(t, mock)

	_, err := s.SuggestList(ctx, lists.DayToDay, testKey())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSuggestObjectives_FillsBlankTiers(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		"```json\n{\"basic\": \"Spot 3 fallacies in a memo\", \"intermediate\": \"  \", \"advanced\": \"Lead a review board\"}\n```",
	)})
	s := newTestService(t, mock)
	p := skive.Path("skills.cognitive.analytical_thinking")

	got, err := s.SuggestObjectives(context.Background(), testKey(), p)
	require.NoError(t, err)

	assert.Equal(t, provenance.AI, got.Source)
	assert.Equal(t, "Spot 3 fallacies in a memo", got.Levels.Basic)
	assert.Equal(t, DefaultObjectives(p).Intermediate, got.Levels.Intermediate)
	assert.Equal(t, "Lead a review board", got.Levels.Advanced)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Path: skills.cognitive.analytical_thinking")
}

func TestSuggestObjectives_FailureReturnsDefaults(t *testing.T) {
	s := newTestService(t, llm.NewMockProvider())
	p := skive.Path("values.coreValues")

	got, err := s.SuggestObjectives(context.Background(), testKey(), p)
	require.NoError(t, err)
	assert.Equal(t, provenance.Default, got.Source)
	assert.Equal(t, DefaultObjectives(p), got.Levels)
}

func TestDefaultObjectives_UsesLeafName(t *testing.T) {
	l := DefaultObjectives(skive.Path("skills.cognitive.analytical_thinking"))
	assert.Equal(t, "Demonstrate basic competence in analytical thinking by completing 2 guided tasks within 2 weeks.", l.Basic)
	assert.Contains(t, l.Intermediate, "<10% errors")
	assert.Contains(t, l.Advanced, "requiring analytical thinking")
}

func TestDefaultLists(t *testing.T) {
	d := DefaultDayToDay("Claims Adjuster", "Claims")
	assert.Equal(t, "Review claims adjuster queue and triage high-priority items by 10 AM", d[0])
	assert.Equal(t, "Collaborate with claims stakeholders to unblock dependencies", d[2])

	k := DefaultKRAs("Analyst")
	assert.Len(t, k, 8)
	assert.Equal(t, "Achieve ≥ 95% SLA adherence for key analyst processes by Q4", k[0])
}
