package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"visualizer-service/internal/cardapi"
	"visualizer-service/internal/models"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Card{}, &models.DatabaseConnection{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRepository(db)
}

func mockRunner(t *testing.T) (*QueryRunner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	runner := NewQueryRunnerWithOpener(func(driverName, dsn string) (*sql.DB, error) {
		return db, nil
	}, time.Second)
	return runner, mock
}

func TestRepositoryCards(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	card := &models.Card{Name: "Sales", Display: models.DisplayLine, DatabaseID: 1, NativeQuery: "SELECT 1"}
	require.NoError(t, repo.CreateCard(ctx, card))
	assert.NotZero(t, card.ID)
	assert.NotNil(t, card.VisualizationSettings)

	second := &models.Card{
		Name:                  "Orders",
		Display:               models.DisplayBar,
		VisualizationSettings: map[string]any{"graph.dimensions": []any{"Date"}},
	}
	require.NoError(t, repo.CreateCard(ctx, second))

	got, err := repo.GetCard(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Orders", got.Name)
	assert.Equal(t, models.DisplayBar, got.Display)
	assert.Equal(t, []any{"Date"}, got.VisualizationSettings["graph.dimensions"])

	cards, err := repo.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Sales", cards[0].Name)

	require.NoError(t, repo.DeleteCard(ctx, card.ID))
	_, err = repo.GetCard(ctx, card.ID)
	assert.ErrorIs(t, err, cardapi.ErrCardNotFound)
	assert.ErrorIs(t, repo.DeleteCard(ctx, card.ID), cardapi.ErrCardNotFound)
}

func TestRepositoryDatabases(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	conn := &models.DatabaseConnection{Name: "warehouse", Engine: "postgres", DSN: "postgres://localhost/warehouse"}
	require.NoError(t, repo.CreateDatabase(ctx, conn))

	got, err := repo.GetDatabase(ctx, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, "warehouse", got.Name)
	assert.Equal(t, "postgres://localhost/warehouse", got.DSN)

	_, err = repo.GetDatabase(ctx, conn.ID+100)
	assert.ErrorIs(t, err, ErrDatabaseNotFound)

	list, err := repo.ListDatabases(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(&pq.Error{Code: "23505"}))
	assert.True(t, isDuplicate(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, isDuplicate(&pq.Error{Code: "23503"}))
	assert.False(t, isDuplicate(fmt.Errorf("boom")))
}

func TestQueryRunnerRun(t *testing.T) {
	runner, mock := mockRunner(t)
	conn := models.DatabaseConnection{ID: 1, Name: "warehouse", Engine: "postgres"}

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("Date").OfType("DATE", time.Time{}),
		sqlmock.NewColumn("Total").OfType("NUMERIC", ""),
		sqlmock.NewColumn("Region").OfType("VARCHAR", ""),
	).
		AddRow("2024-01-01", []byte("10.50"), "EU").
		AddRow("2024-01-02", []byte("7.25"), "US")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT date, total, region FROM sales WHERE region <> $1")).
		WithArgs("APAC").
		WillReturnRows(rows)

	ds, err := runner.Run(context.Background(), conn,
		"SELECT date, total, region FROM sales WHERE region <> $1",
		[]models.Parameter{{ID: "region", Type: "category", Value: "APAC"}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, ds.Data.Cols, 3)
	assert.Equal(t, "Date", ds.Data.Cols[0].Name)
	assert.Equal(t, "type/Date", ds.Data.Cols[0].BaseType)
	assert.Equal(t, "type/Decimal", ds.Data.Cols[1].BaseType)
	assert.Equal(t, "type/Text", ds.Data.Cols[2].BaseType)
	assert.Equal(t, 2, ds.RowCount)
	assert.Equal(t, "10.50", ds.Data.Rows[0][1])
	assert.Equal(t, "US", ds.Data.Rows[1][2])
}

func TestQueryRunnerErrors(t *testing.T) {
	runner, mock := mockRunner(t)

	_, err := runner.Run(context.Background(), models.DatabaseConnection{ID: 2, Engine: "oracle"}, "SELECT 1", nil)
	assert.ErrorContains(t, err, "unsupported database engine")

	mock.ExpectQuery("SELECT broken").WillReturnError(fmt.Errorf("syntax error"))
	_, err = runner.Run(context.Background(), models.DatabaseConnection{ID: 1, Name: "w", Engine: "mysql"}, "SELECT broken", nil)
	assert.ErrorContains(t, err, "syntax error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseType(t *testing.T) {
	cases := map[string]string{
		"int4":         "type/Integer",
		"BIGINT":       "type/Integer",
		"VARCHAR(255)": "type/Text",
		"TIMESTAMPTZ":  "type/DateTime",
		"bool":         "type/Boolean",
		"FLOAT8":       "type/Float",
		"BLOB":         "type/*",
	}
	for in, want := range cases {
		assert.Equal(t, want, baseType(in), "db type %s", in)
	}
}

func TestServiceGetCardQuery(t *testing.T) {
	repo := setupRepository(t)
	runner, mock := mockRunner(t)
	svc := NewService(repo, runner)
	ctx := context.Background()

	conn := &models.DatabaseConnection{Name: "warehouse", Engine: "sqlite3", DSN: "file:warehouse.db"}
	require.NoError(t, repo.CreateDatabase(ctx, conn))
	card := &models.Card{Name: "Sales", Display: models.DisplayLine, DatabaseID: conn.ID, NativeQuery: "SELECT name FROM products"}
	require.NoError(t, repo.CreateCard(ctx, card))

	mock.ExpectQuery("SELECT name FROM products").
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(sqlmock.NewColumn("name").OfType("TEXT", "")).AddRow("Widget"))

	ds, err := svc.GetCardQuery(ctx, card.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RowCount)
	assert.Equal(t, "Widget", ds.Data.Rows[0][0])

	got, err := svc.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sales", got.Name)

	orphan := &models.Card{Name: "Orphan", Display: models.DisplayTable, DatabaseID: 999, NativeQuery: "SELECT 1"}
	require.NoError(t, repo.CreateCard(ctx, orphan))
	_, err = svc.GetCardQuery(ctx, orphan.ID, nil)
	assert.ErrorIs(t, err, ErrDatabaseNotFound)

	_, err = svc.GetCardQuery(ctx, 12345, nil)
	assert.ErrorIs(t, err, cardapi.ErrCardNotFound)
}
