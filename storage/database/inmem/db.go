// Package inmemdb provides mutex-guarded in-memory repositories; for tests
// and local hacking without a database file.
package inmemdb

import (
	"sync"

	"github.com/trezcool/prepclass/core/material"
	"github.com/trezcool/prepclass/core/user"
)

type (
	DB struct {
		user     *userTable
		material *materialTable
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User // keyed by username
	}

	recordKey struct {
		username, topic string
	}

	materialTable struct {
		mutex sync.RWMutex
		table map[recordKey]*material.Record
	}
)

func Open() *DB {
	return &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		material: &materialTable{table: make(map[recordKey]*material.Record)},
	}
}
