package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"visualizer-service/internal/models"
)

// Opener opens a database handle, sql.Open by default.
type Opener func(driverName, dsn string) (*sql.DB, error)

var engineDrivers = map[string]string{
	"postgres": "postgres",
	"mysql":    "mysql",
	"sqlite3":  "sqlite3",
}

// QueryRunner executes native card queries against registered databases.
// Handles are opened lazily and reused per database id.
type QueryRunner struct {
	open    Opener
	timeout time.Duration
	dbs     map[int]*sql.DB
	mu      sync.Mutex
}

// NewQueryRunner creates a QueryRunner bounding every query by timeout.
func NewQueryRunner(timeout time.Duration) *QueryRunner {
	return NewQueryRunnerWithOpener(sql.Open, timeout)
}

// NewQueryRunnerWithOpener creates a QueryRunner that opens handles with open.
func NewQueryRunnerWithOpener(open Opener, timeout time.Duration) *QueryRunner {
	return &QueryRunner{
		open:    open,
		timeout: timeout,
		dbs:     make(map[int]*sql.DB),
	}
}

func (r *QueryRunner) handle(conn models.DatabaseConnection) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.dbs[conn.ID]; ok {
		return db, nil
	}
	driverName, ok := engineDrivers[conn.Engine]
	if !ok {
		return nil, fmt.Errorf("unsupported database engine %q", conn.Engine)
	}
	db, err := r.open(driverName, conn.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", conn.Name, err)
	}
	r.dbs[conn.ID] = db
	log.Printf("Opened %s connection for database %q (id %d)", conn.Engine, conn.Name, conn.ID)
	return db, nil
}

// Run executes query on conn with parameter values as positional arguments.
func (r *QueryRunner) Run(ctx context.Context, conn models.DatabaseConnection, query string, params []models.Parameter) (*models.Dataset, error) {
	db, err := r.handle(conn)
	if err != nil {
		return nil, err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := make([]any, 0, len(params))
	for _, p := range params {
		args = append(args, p.Value)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query on database %q failed: %w", conn.Name, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	cols := make([]models.Column, len(types))
	for i, ct := range types {
		base := baseType(ct.DatabaseTypeName())
		cols[i] = models.Column{
			Name:          ct.Name(),
			DisplayName:   ct.Name(),
			FieldRef:      []any{"field", ct.Name(), map[string]any{"base-type": base}},
			BaseType:      base,
			EffectiveType: base,
			Source:        "native",
		}
	}

	data := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	return &models.Dataset{
		Data:     models.DatasetData{Cols: cols, Rows: data},
		RowCount: len(data),
		Status:   "completed",
	}, nil
}

// Close closes every open handle.
func (r *QueryRunner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for id, db := range r.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database %d: %w", id, err)
		}
		delete(r.dbs, id)
	}
	return firstErr
}

// baseType maps a driver column type name to a semantic base type.
func baseType(dbType string) string {
	t := strings.ToUpper(dbType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimPrefix(t, "UNSIGNED ")
	switch t {
	case "INT", "INT2", "INT4", "INT8", "INTEGER", "SMALLINT", "BIGINT", "TINYINT", "MEDIUMINT", "SERIAL", "BIGSERIAL":
		return "type/Integer"
	case "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "REAL":
		return "type/Float"
	case "NUMERIC", "DECIMAL":
		return "type/Decimal"
	case "BOOL", "BOOLEAN":
		return "type/Boolean"
	case "DATE":
		return "type/Date"
	case "TIME", "TIMETZ":
		return "type/Time"
	case "TIMESTAMP", "TIMESTAMPTZ", "DATETIME":
		return "type/DateTime"
	case "CHAR", "VARCHAR", "BPCHAR", "TEXT", "NVARCHAR", "NCHAR", "UUID", "ENUM":
		return "type/Text"
	case "JSON", "JSONB":
		return "type/JSON"
	}
	return "type/*"
}
