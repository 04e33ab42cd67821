// internal/knowledge/supabase.go
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	commonhttp "mafatih/internal/common/http"
	"mafatih/internal/models"
)

const SupabaseService = "supabase"

// SupabaseSearcher reads the islamic_questions table through PostgREST.
type SupabaseSearcher struct {
	baseURL string
	anonKey string
	limit   int
	client  *commonhttp.Client
}

func NewSupabaseSearcher(baseURL, anonKey string, client *commonhttp.Client, limit int) (*SupabaseSearcher, error) {
	if baseURL == "" || anonKey == "" {
		return nil, fmt.Errorf("%w: supabase url and anon key are required", ErrBackendMisconfig)
	}
	if client == nil {
		client = commonhttp.NewClient(SupabaseService, 0)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &SupabaseSearcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		limit:   limit,
		client:  client,
	}, nil
}

func (s *SupabaseSearcher) Name() string { return SupabaseService }

type supabaseRow struct {
	ID       json.RawMessage `json:"id"`
	Question string          `json:"question"`
	Answer   string          `json:"answer"`
	Source   string          `json:"source"`
	Category string          `json:"category"`
	Tags     []string        `json:"tags"`
}

// PostgREST filter syntax reserves these characters inside or=(...).
var postgrestReserved = strings.NewReplacer(",", " ", "(", " ", ")", " ", "*", " ")

func (s *SupabaseSearcher) Search(ctx context.Context, query string) ([]models.Fatwa, error) {
	q := strings.TrimSpace(postgrestReserved.Replace(query))
	if q == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("select", "id,question,answer,source,category,tags")
	params.Set("or", fmt.Sprintf("(question.ilike.*%s*,answer.ilike.*%s*)", q, q))
	params.Set("limit", strconv.Itoa(s.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/rest/v1/islamic_questions?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSearchFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []supabaseRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSearchFailed, err)
	}

	results := make([]models.Fatwa, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.Fatwa{
			ID:       strings.Trim(string(row.ID), `"`),
			Question: row.Question,
			Answer:   row.Answer,
			Source:   row.Source,
			Category: row.Category,
			Tags:     row.Tags,
		})
	}
	return results, nil
}

// Ping checks that the table is reachable with the configured key.
func (s *SupabaseSearcher) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/rest/v1/islamic_questions?select=id&limit=1", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("supabase ping failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("supabase ping returned status %d", resp.StatusCode)
	}
	return nil
}
