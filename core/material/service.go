package material

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("no materials found for this topic")
	// ErrGenerationFailed wraps any text-completion failure; no partial
	// documents are ever persisted.
	ErrGenerationFailed = errors.New("generating materials failed")
)

type (
	// Generator produces one document from one prompt. The system
	// instruction and sampling parameters are fixed by the implementation.
	Generator interface {
		Generate(ctx context.Context, prompt string) (string, error)
	}

	Service struct {
		repo Repository
		gen  Generator

		now func() time.Time // stubbed in tests
	}
)

func NewService(repo Repository, gen Generator) *Service {
	return &Service{
		repo: repo,
		gen:  gen,
		now:  time.Now,
	}
}

// Generate produces the pre-class, in-class and post-class documents for the
// given topic/difficulty pair with three sequential completion calls, then
// upserts them as a single record keyed by (username, topic).
//
// The three calls are all-or-nothing: if any of them fails, nothing is
// persisted and the existing record (if any) is left untouched.
func (svc *Service) Generate(ctx context.Context, username, topic string, level Difficulty) (Record, error) {
	preClass, err := svc.gen.Generate(ctx, PreClassPrompt(topic, level))
	if err != nil {
		return Record{}, wrapGenErr(err, "pre-class document")
	}
	inClass, err := svc.gen.Generate(ctx, InClassPrompt(topic, level))
	if err != nil {
		return Record{}, wrapGenErr(err, "in-class lesson plan")
	}
	postClass, err := svc.gen.Generate(ctx, PostClassPrompt(topic, level))
	if err != nil {
		return Record{}, wrapGenErr(err, "post-class materials")
	}

	rec := Record{
		Username:   username,
		Topic:      topic,
		Difficulty: level,
		Timestamp:  svc.now().Format(TimestampLayout),
		ContentSet: ContentSet{
			PreClass:  preClass,
			InClass:   inClass,
			PostClass: postClass,
		},
	}
	rec, err = svc.repo.UpsertRecord(ctx, rec)
	return rec, pkgerrors.Wrap(err, "upserting record")
}

// History returns the user's records, most recently generated first.
func (svc *Service) History(ctx context.Context, username string) ([]Record, error) {
	return svc.repo.QueryRecordsByUsername(ctx, username)
}

// HistoryMap returns the user's history as a topic-keyed mapping; duplicate
// topics cannot exist by construction of the (username, topic) identity key.
func (svc *Service) HistoryMap(ctx context.Context, username string) (map[string]Record, error) {
	recs, err := svc.repo.QueryRecordsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	history := make(map[string]Record, len(recs))
	for _, rec := range recs {
		history[rec.Topic] = rec
	}
	return history, nil
}

func (svc *Service) Get(ctx context.Context, username, topic string) (Record, error) {
	return svc.repo.GetRecord(ctx, username, topic)
}

// Clear removes all of the user's records from the store, not just from the
// client's view.
func (svc *Service) Clear(ctx context.Context, username string) error {
	return svc.repo.DeleteRecordsByUsername(ctx, username)
}

// wrapGenErr keeps ErrGenerationFailed as the cause so callers can map it.
func wrapGenErr(err error, doc string) error {
	return pkgerrors.Wrapf(ErrGenerationFailed, "%s: %v", doc, err)
}
