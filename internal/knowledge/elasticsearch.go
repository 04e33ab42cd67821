// internal/knowledge/elasticsearch.go
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"mafatih/internal/models"
)

const DefaultIndex = "islamic_questions"

// ElasticsearchSearcher runs a multi_match query over the fatwa index.
type ElasticsearchSearcher struct {
	client *elasticsearch.Client
	index  string
	limit  int
}

func NewElasticsearchSearcher(client *elasticsearch.Client, index string, limit int) (*ElasticsearchSearcher, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: elasticsearch client is nil", ErrBackendMisconfig)
	}
	if index == "" {
		index = DefaultIndex
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &ElasticsearchSearcher{client: client, index: index, limit: limit}, nil
}

func (s *ElasticsearchSearcher) Name() string { return "elasticsearch" }

type fatwaDocument struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Source   string   `json:"source"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string        `json:"_id"`
			Source fatwaDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildFatwaQuery(query string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"question^3", "tags^2", "answer"},
				"type":   "best_fields",
			},
		},
	}
}

func (s *ElasticsearchSearcher) Search(ctx context.Context, query string) ([]models.Fatwa, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	body, err := json.Marshal(buildFatwaQuery(q))
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrSearchFailed, err)
	}

	size := s.limit
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, res.Status())
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSearchFailed, err)
	}

	results := make([]models.Fatwa, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		results = append(results, models.Fatwa{
			ID:       hit.ID,
			Question: hit.Source.Question,
			Answer:   hit.Source.Answer,
			Source:   hit.Source.Source,
			Category: hit.Source.Category,
			Tags:     hit.Source.Tags,
			URL:      hit.Source.URL,
		})
	}
	return results, nil
}
