package testutils

import (
	"context"
	"log"

	"github.com/itbasis/go-clock"

	"github.com/djmorgan26/fantasy-football-assistant/containers"
	"github.com/djmorgan26/fantasy-football-assistant/db"
)

// TestDB wraps a containerized Postgres instance with a connected db.DB for
// tests outside of the db package itself.
type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
