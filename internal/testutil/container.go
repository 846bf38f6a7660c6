// Package testutil starts throwaway postgres, redis and rabbitmq containers for
// integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Alturino/tourism/internal/infra"
)

const (
	POSTGRES_IMAGE = "postgres:16.6-alpine3.21"
	REDIS_IMAGE    = "redis:7.4.2-alpine3.21"
	RABBITMQ_IMAGE = "rabbitmq:3.13-alpine"
)

func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// UpMigrations lists every *.up.sql file in apply order.
func UpMigrations(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(MigrationsDir())
	if err != nil {
		t.Fatalf("failed reading migrations dir with error: %s", err)
	}
	paths := []string{}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			paths = append(paths, filepath.Join(MigrationsDir(), e.Name()))
		}
	}
	sort.Strings(paths)
	return paths
}

func NewPostgres(t *testing.T, c context.Context, seedPaths ...string) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pgContainer, err := postgres.Run(
		c,
		POSTGRES_IMAGE,
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(append(UpMigrations(t), seedPaths...)...),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Errorf("failed to terminate container: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgconfig with error: %s", err)
	}
	pgConfig.AfterConnect = infra.RegisterTypes

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	t.Cleanup(pool.Close)

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}
	return pool
}

func NewRedis(t *testing.T, c context.Context) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	redisContainer, err := testRedis.Run(c, REDIS_IMAGE)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Errorf("failed to terminate container: %s", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis url with error: %s", err)
	}

	client := redis.NewClient(redisOpt)
	t.Cleanup(func() { client.Close() })
	if err = client.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}
	return client
}

func SeedPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "seed.sql")
}

func NewRabbitMQ(t *testing.T, c context.Context) *amqp.Connection {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	container, err := testcontainers.GenericContainer(c, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RABBITMQ_IMAGE,
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed running rabbitmq container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Errorf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(c)
	if err != nil {
		t.Fatalf("failed getting rabbitmq host with error: %s", err)
	}
	port, err := container.MappedPort(c, "5672")
	if err != nil {
		t.Fatalf("failed getting rabbitmq port with error: %s", err)
	}

	conn, err := amqp.DialConfig(
		"amqp://guest:guest@"+host+":"+port.Port()+"/",
		amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)},
	)
	if err != nil {
		t.Fatalf("failed dialing rabbitmq with error: %s", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}
