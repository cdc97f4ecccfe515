package repositories

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// Интеграционные тесты репозиториев ходят в настоящий Postgres.
// Без TEST_DATABASE_URL они пропускаются.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("не удалось открыть соединение с тестовой базой: %v", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось установить диалект goose: %v", err)
	}
	if err := goose.Up(db, "../../migrations"); err != nil {
		log.Fatalf("не удалось применить миграции к тестовой базе: %v", err)
	}
	db.Close()

	testPool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("не удалось подключиться к тестовой базе: %v", err)
	}

	code := m.Run()
	testPool.Close()
	os.Exit(code)
}

func requireTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL не задан, интеграционные тесты пропущены")
	}

	_, err := testPool.Exec(context.Background(),
		"TRUNCATE equipment, equipment_history RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return testPool
}
