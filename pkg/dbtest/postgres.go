package dbtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	EnvIntegration = "DEALFLOW_INTEGRATION"

	postgresImage = "postgres:16-alpine"
	startTimeout  = 2 * time.Minute
)

// Postgres starts a disposable PostgreSQL container and returns a connection
// to it. The test is skipped unless DEALFLOW_INTEGRATION=1.
func Postgres(t *testing.T) *sqlx.DB {
	t.Helper()

	if os.Getenv(EnvIntegration) != "1" {
		t.Skipf("set %s=1 to run integration tests", EnvIntegration)
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "dealflow",
				"POSTGRES_PASSWORD": "dealflow",
				"POSTGRES_DB":       "dealflow",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("testcontainers.GenericContainer: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("container.Terminate: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container.Host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container.MappedPort: %v", err)
	}

	dsn := fmt.Sprintf("postgres://dealflow:dealflow@%s:%s/dealflow?sslmode=disable", host, port.Port())

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		t.Fatalf("sqlx.ConnectContext: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}
