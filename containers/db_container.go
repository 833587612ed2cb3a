package containers

import (
	"context"
	"log"
	"path/filepath"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const pgImage = "postgres:16.3-alpine"

// DBContainer is a throwaway Postgres instance for db tests, started with
// the schema already applied.
type DBContainer struct {
	container *postgres.PostgresContainer
}

// NewDBContainer starts the container and blocks until it accepts
// connections. Tests call this from TestMain, so a startup failure is fatal.
func NewDBContainer() *DBContainer {
	ctx := context.Background()

	container, err := postgres.Run(ctx, pgImage,
		postgres.WithDatabase("fantasy_assistant"),
		postgres.WithUsername("ffuser"),
		postgres.WithPassword("secret"),
		postgres.WithInitScripts(filepath.Join("..", "schema", "schema.sql")),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("error starting container: %v", err)
	}

	return &DBContainer{container: container}
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	// sslmode=disable because the container does not run with TLS
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting connection string: %v", err)
	}
	return connStr
}
