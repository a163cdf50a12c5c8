package material

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	err   error
	calls []string
}

func (gen *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	gen.calls = append(gen.calls, prompt)
	if gen.err != nil {
		return "", gen.err
	}
	return fmt.Sprintf("doc #%d", len(gen.calls)), nil
}

type fakeRepo struct {
	records map[string]Record // keyed by topic; single-user tests
}

func newFakeRepo() *fakeRepo { return &fakeRepo{records: make(map[string]Record)} }

func (repo *fakeRepo) UpsertRecord(_ context.Context, rec Record) (Record, error) {
	repo.records[rec.Topic] = rec
	return rec, nil
}

func (repo *fakeRepo) QueryRecordsByUsername(_ context.Context, username string) ([]Record, error) {
	recs := make([]Record, 0, len(repo.records))
	for _, rec := range repo.records {
		if rec.Username == username {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (repo *fakeRepo) GetRecord(_ context.Context, username, topic string) (Record, error) {
	if rec, ok := repo.records[topic]; ok && rec.Username == username {
		return rec, nil
	}
	return Record{}, ErrNotFound
}

func (repo *fakeRepo) DeleteRecordsByUsername(_ context.Context, username string) error {
	for topic, rec := range repo.records {
		if rec.Username == username {
			delete(repo.records, topic)
		}
	}
	return nil
}

func TestService_Generate(t *testing.T) {
	repo := newFakeRepo()
	gen := new(fakeGenerator)
	svc := NewService(repo, gen)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC) }

	rec, err := svc.Generate(context.Background(), "mentor1", "Binary Trees", Intermediate)
	require.NoError(t, err)

	// three sequential calls: pre-class, in-class, post-class
	require.Len(t, gen.calls, 3)
	assert.Contains(t, gen.calls[0], "pre-class document")
	assert.Contains(t, gen.calls[1], "lesson plan")
	assert.Contains(t, gen.calls[2], "post-class document")

	assert.Equal(t, "mentor1", rec.Username)
	assert.Equal(t, "Binary Trees", rec.Topic)
	assert.Equal(t, Intermediate, rec.Difficulty)
	assert.Equal(t, "2026-08-28 10:30", rec.Timestamp)
	assert.Equal(t, "doc #1", rec.PreClass)
	assert.Equal(t, "doc #2", rec.InClass)
	assert.Equal(t, "doc #3", rec.PostClass)

	stored, err := svc.Get(context.Background(), "mentor1", "Binary Trees")
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestService_Generate_allOrNothing(t *testing.T) {
	repo := newFakeRepo()
	gen := new(fakeGenerator)
	svc := NewService(repo, gen)

	// seed an existing record for the topic
	existing, err := svc.Generate(context.Background(), "mentor1", "Graphs", Beginner)
	require.NoError(t, err)

	gen.err = errors.New("429 rate limited")
	_, err = svc.Generate(context.Background(), "mentor1", "Graphs", Advanced)
	require.Error(t, err)
	assert.Equal(t, ErrGenerationFailed, pkgerrors.Cause(err))

	// the failed run must not have touched the stored record
	kept, err := svc.Get(context.Background(), "mentor1", "Graphs")
	require.NoError(t, err)
	assert.Equal(t, existing, kept)
}

func TestService_Generate_upsertsPerTopic(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, new(fakeGenerator))

	_, err := svc.Generate(context.Background(), "mentor1", "Graphs", Beginner)
	require.NoError(t, err)
	rec2, err := svc.Generate(context.Background(), "mentor1", "Graphs", Advanced)
	require.NoError(t, err)

	recs, err := svc.History(context.Background(), "mentor1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec2, recs[0])
}

func TestService_HistoryMapAndClear(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, new(fakeGenerator))
	ctx := context.Background()

	_, err := svc.Generate(ctx, "mentor1", "Graphs", Beginner)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "mentor1", "Dynamic Programming", Advanced)
	require.NoError(t, err)

	history, err := svc.HistoryMap(ctx, "mentor1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Contains(t, history, "Graphs")
	assert.Contains(t, history, "Dynamic Programming")

	require.NoError(t, svc.Clear(ctx, "mentor1"))
	history, err = svc.HistoryMap(ctx, "mentor1")
	require.NoError(t, err)
	assert.Empty(t, history)
	_, err = svc.Get(ctx, "mentor1", "Graphs")
	assert.Equal(t, ErrNotFound, err)
}

func TestPrompts(t *testing.T) {
	for _, prompt := range []string{
		PreClassPrompt("Binary Trees", Advanced),
		InClassPrompt("Binary Trees", Advanced),
		PostClassPrompt("Binary Trees", Advanced),
	} {
		assert.Contains(t, prompt, "Binary Trees")
		assert.Contains(t, prompt, "advanced")
		assert.NotContains(t, prompt, "Advanced")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, level := range Difficulties {
		got, err := ParseDifficulty(string(level))
		require.NoError(t, err)
		assert.Equal(t, level, got)
	}
	_, err := ParseDifficulty("expert")
	assert.Equal(t, ErrUnknownDifficulty, err)
	_, err = ParseDifficulty(strings.ToLower(string(Beginner)))
	assert.Equal(t, ErrUnknownDifficulty, err)
}

func TestContentSet_Content(t *testing.T) {
	cs := ContentSet{PreClass: "pre", InClass: "in", PostClass: "post"}
	for doc, want := range map[Document]string{DocPreClass: "pre", DocInClass: "in", DocPostClass: "post"} {
		got, err := cs.Content(doc)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := cs.Content("homework")
	assert.Equal(t, ErrUnknownDocument, err)
}
