package sqliterepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/prepclass/core/material"
)

type materialRepository struct {
	db *sqlx.DB
}

var _ material.Repository = (*materialRepository)(nil)

func NewMaterialRepository(db *sqlx.DB) *materialRepository {
	return &materialRepository{db: db}
}

type recordRow struct {
	Username   string `db:"username"`
	Topic      string `db:"topic"`
	Difficulty string `db:"difficulty"`
	Timestamp  string `db:"timestamp"`
	PreClass   string `db:"pre_class"`
	InClass    string `db:"in_class"`
	PostClass  string `db:"post_class"`
}

func (r recordRow) toRecord() material.Record {
	return material.Record{
		Username:   r.Username,
		Topic:      r.Topic,
		Difficulty: material.Difficulty(r.Difficulty),
		Timestamp:  r.Timestamp,
		ContentSet: material.ContentSet{
			PreClass:  r.PreClass,
			InClass:   r.InClass,
			PostClass: r.PostClass,
		},
	}
}

func newRecordRow(rec material.Record) recordRow {
	return recordRow{
		Username:   rec.Username,
		Topic:      rec.Topic,
		Difficulty: string(rec.Difficulty),
		Timestamp:  rec.Timestamp,
		PreClass:   rec.PreClass,
		InClass:    rec.InClass,
		PostClass:  rec.PostClass,
	}
}

const selectRecord = `
SELECT username, topic, difficulty, timestamp, pre_class, in_class, post_class FROM history`

func (repo *materialRepository) UpsertRecord(ctx context.Context, rec material.Record) (material.Record, error) {
	_, err := repo.db.NamedExecContext(ctx, `
INSERT INTO history (username, topic, difficulty, timestamp, pre_class, in_class, post_class)
VALUES (:username, :topic, :difficulty, :timestamp, :pre_class, :in_class, :post_class)
ON CONFLICT (username, topic) DO UPDATE SET
    difficulty = excluded.difficulty,
    timestamp  = excluded.timestamp,
    pre_class  = excluded.pre_class,
    in_class   = excluded.in_class,
    post_class = excluded.post_class`, newRecordRow(rec))
	if err != nil {
		return material.Record{}, wrapDBErr(err, "upserting record")
	}
	return rec, nil
}

func (repo *materialRepository) QueryRecordsByUsername(ctx context.Context, username string) ([]material.Record, error) {
	var rows []recordRow
	err := repo.db.SelectContext(ctx, &rows, selectRecord+` WHERE username = ? ORDER BY timestamp DESC, topic`, username)
	if err != nil {
		return nil, wrapDBErr(err, "querying records")
	}
	recs := make([]material.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.toRecord())
	}
	return recs, nil
}

func (repo *materialRepository) GetRecord(ctx context.Context, username, topic string) (material.Record, error) {
	var row recordRow
	err := repo.db.GetContext(ctx, &row, selectRecord+` WHERE username = ? AND topic = ?`, username, topic)
	if err != nil {
		if err == sql.ErrNoRows {
			return material.Record{}, material.ErrNotFound
		}
		return material.Record{}, wrapDBErr(err, "getting record")
	}
	return row.toRecord(), nil
}

func (repo *materialRepository) DeleteRecordsByUsername(ctx context.Context, username string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM history WHERE username = ?`, username)
	return wrapDBErr(err, "deleting records")
}
