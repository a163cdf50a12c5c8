package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/prepclass/core/material"
	"github.com/trezcool/prepclass/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	uname, pwd string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Username:  uname,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateRecord(
	t *testing.T,
	repo material.Repository,
	uname, topic string,
	level material.Difficulty,
	timestamp ...string,
) material.Record {
	t.Helper()

	tstamp := time.Now().Format(material.TimestampLayout)
	if len(timestamp) > 0 {
		tstamp = timestamp[0]
	}
	rec := material.Record{
		Username:   uname,
		Topic:      topic,
		Difficulty: level,
		Timestamp:  tstamp,
		ContentSet: material.ContentSet{
			PreClass:  "Pre-class notes: " + topic,
			InClass:   "In-class plan: " + topic,
			PostClass: "Post-class materials: " + topic,
		},
	}
	rec, err := repo.UpsertRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return rec
}
