package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ProjectIndex mirrors projects into Elasticsearch for full-text search.
// The document store stays authoritative; search returns ids only.
type ProjectIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewProjectIndex(es *elasticsearch.Client, index string) *ProjectIndex {
	return &ProjectIndex{ES: es, Index: index}
}

// projectDoc omits _id, which Elasticsearch reserves as metadata.
type projectDoc struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Featured    bool     `json:"featured"`
	Order       int      `json:"order"`
	CreatedAt   string   `json:"createdAt"`
}

func toDoc(p *entity.Project) projectDoc {
	return projectDoc{
		Title:       p.Title,
		Description: p.Description,
		TechStack:   p.TechStack,
		Featured:    p.Featured,
		Order:       p.Order,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (x *ProjectIndex) Put(ctx context.Context, p *entity.Project) error {
	b, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *ProjectIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// a missing document is already in the desired state
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// SearchQuery builds a multi_match query over the text fields.
func SearchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^3", "techStack^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size":    size,
		"_source": false,
	}
}

// Search returns matching project ids ordered by relevance.
func (x *ProjectIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	b, err := json.Marshal(SearchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
