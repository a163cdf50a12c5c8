package material

import (
	"context"
	"errors"
)

// TimestampLayout is the stored record timestamp format: local time, minute
// precision. String ordering on it matches chronological ordering.
const TimestampLayout = "2006-01-02 15:04"

// Difficulty of the generated materials. It shapes the prompt content only,
// not the generation parameters.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

var ErrUnknownDifficulty = errors.New("unknown difficulty level")

func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if s == string(d) {
			return d, nil
		}
	}
	return "", ErrUnknownDifficulty
}

// Document identifies one of the three generated documents of a Record.
type Document string

const (
	DocPreClass  Document = "pre_class"
	DocInClass   Document = "in_class"
	DocPostClass Document = "post_class"
)

var ErrUnknownDocument = errors.New("unknown document")

func ParseDocument(s string) (Document, error) {
	switch Document(s) {
	case DocPreClass, DocInClass, DocPostClass:
		return Document(s), nil
	}
	return "", ErrUnknownDocument
}

// ContentSet holds the three generated documents for one topic.
type ContentSet struct {
	PreClass  string `json:"pre_class"`
	InClass   string `json:"in_class"`
	PostClass string `json:"post_class"`
}

// Content returns the named document.
func (cs ContentSet) Content(doc Document) (string, error) {
	switch doc {
	case DocPreClass:
		return cs.PreClass, nil
	case DocInClass:
		return cs.InClass, nil
	case DocPostClass:
		return cs.PostClass, nil
	}
	return "", ErrUnknownDocument
}

// Record is one generated set of materials. Identity key is
// (Username, Topic): at most one record per topic per user, last write wins.
type Record struct {
	Username   string     `json:"-"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Timestamp  string     `json:"timestamp"`
	ContentSet
}

type Repository interface {
	// UpsertRecord inserts rec or, if a record with the same
	// (Username, Topic) exists, updates its difficulty, timestamp and
	// content fields in place. The operation is atomic.
	UpsertRecord(ctx context.Context, rec Record) (Record, error)
	// QueryRecordsByUsername returns all of the user's records ordered by
	// timestamp descending.
	QueryRecordsByUsername(ctx context.Context, username string) ([]Record, error)
	GetRecord(ctx context.Context, username, topic string) (Record, error)
	DeleteRecordsByUsername(ctx context.Context, username string) error
}
