package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/prepclass/core/material"
)

type materialRepository struct {
	db *materialTable
}

var _ material.Repository = (*materialRepository)(nil)

func NewMaterialRepository(db *DB) *materialRepository {
	return &materialRepository{db: db.material}
}

func (repo *materialRepository) UpsertRecord(_ context.Context, rec material.Record) (material.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[recordKey{rec.Username, rec.Topic}] = &rec
	return rec, nil
}

func (repo *materialRepository) QueryRecordsByUsername(_ context.Context, username string) ([]material.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	recs := make([]material.Record, 0)
	for key, rec := range repo.db.table {
		if key.username == username {
			recs = append(recs, *rec)
		}
	}
	// latest first; the timestamp layout sorts lexicographically
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Timestamp != recs[j].Timestamp {
			return recs[i].Timestamp > recs[j].Timestamp
		}
		return recs[i].Topic < recs[j].Topic
	})
	return recs, nil
}

func (repo *materialRepository) GetRecord(_ context.Context, username, topic string) (material.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rec, ok := repo.db.table[recordKey{username, topic}]; ok {
		return *rec, nil
	}
	return material.Record{}, material.ErrNotFound
}

func (repo *materialRepository) DeleteRecordsByUsername(_ context.Context, username string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for key := range repo.db.table {
		if key.username == username {
			delete(repo.db.table, key)
		}
	}
	return nil
}
