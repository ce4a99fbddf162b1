// Package pgvector backs the vector index with Postgres and the pgvector
// extension.
package pgvector

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"docgen/internal/models"
)

type record struct {
	bun.BaseModel `bun:"table:embedding_records,alias:r"`
	ID            int64  `bun:"id,pk,autoincrement"`
	RecordID      string `bun:"record_id,notnull,unique:ns_record"`
	Namespace     string `bun:"namespace,notnull,unique:ns_record"`
	Text          string `bun:"text,notnull"`
	// Column width matches the titan v2 embedding dimension.
	Embedding []float32 `bun:"embedding,notnull,type:vector(1024)"`
	Score     float32   `bun:"score,scanonly"`
}

// Store persists embedding records in an embedding_records table partitioned
// by a namespace column.
type Store struct {
	db *bun.DB
}

// Connect opens the Postgres connection.
func Connect(dsn, password string) *sql.DB {
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(password)))
}

// NewStore wraps an open connection. With debug set, every query is logged.
func NewStore(sqldb *sql.DB, debug bool) *Store {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Store{db: db}
}

// Init creates the records table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*record)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrIndexUnavailable, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Upsert(ctx context.Context, namespace string, records []models.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]record, len(records))
	for i, r := range records {
		rows[i] = record{
			RecordID:  r.ID,
			Namespace: namespace,
			Text:      r.Text,
			Embedding: r.Vector,
		}
	}
	_, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (record_id, namespace) DO UPDATE").
		Set("embedding = EXCLUDED.embedding").
		Set("text = EXCLUDED.text").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrIndexUnavailable, err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, namespace string, vector []float32, k int) ([]models.RetrievalResult, error) {
	var rows []record
	err := s.db.NewSelect().
		Model(&rows).
		Column("record_id", "text").
		ColumnExpr("1 - (embedding <=> ?) AS score", vectorLiteral(vector)).
		Where("namespace = ?", namespace).
		OrderExpr("embedding <=> ?", vectorLiteral(vector)).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIndexUnavailable, err)
	}
	results := make([]models.RetrievalResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.RetrievalResult{
			RecordID: row.RecordID,
			Score:    row.Score,
			Text:     row.Text,
		})
	}
	return results, nil
}

// vectorLiteral renders a pgvector input literal. The embedding column
// expects '[...]' syntax, not a Postgres array.
func vectorLiteral(vector []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
