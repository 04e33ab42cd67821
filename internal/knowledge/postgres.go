// internal/knowledge/postgres.go
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"mafatih/internal/models"
)

const searchQuestionsSQL = `
		SELECT id, question, answer, source, category, tags
		FROM islamic_questions
		WHERE question ILIKE '%' || $1 || '%'
		   OR answer ILIKE '%' || $1 || '%'
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE $1 ILIKE '%' || tag || '%')
		ORDER BY updated_at DESC
		LIMIT $2`

// PostgresSearcher runs the fatwa filter against the islamic_questions
// table.
type PostgresSearcher struct {
	db    *sql.DB
	limit int
}

func NewPostgresSearcher(db *sql.DB, limit int) (*PostgresSearcher, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: postgres pool is nil", ErrBackendMisconfig)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &PostgresSearcher{db: db, limit: limit}, nil
}

func (s *PostgresSearcher) Name() string { return "postgres" }

func (s *PostgresSearcher) Search(ctx context.Context, query string) ([]models.Fatwa, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, searchQuestionsSQL, q, s.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer rows.Close()

	var results []models.Fatwa
	for rows.Next() {
		var (
			fatwa    models.Fatwa
			source   sql.NullString
			category sql.NullString
			tags     pq.StringArray
		)
		if err := rows.Scan(&fatwa.ID, &fatwa.Question, &fatwa.Answer, &source, &category, &tags); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrSearchFailed, err)
		}
		fatwa.Source = source.String
		fatwa.Category = category.String
		fatwa.Tags = []string(tags)
		results = append(results, fatwa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	return results, nil
}
