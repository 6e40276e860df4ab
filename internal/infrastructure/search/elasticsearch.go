// Package search keeps a full-text index of projects in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
)

const requestTimeout = 3 * time.Second

type ProjectIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewProjectIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ProjectIndex {
	return &ProjectIndex{es: es, index: index, logger: logger}
}

// Index stores p under its id, replacing any previous version.
func (x *ProjectIndex) Index(ctx context.Context, p entity.Project) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index project %s: %w", p.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index project %s: %s", p.ID, res.Status())
	}
	return nil
}

// Remove deletes the document for id. A missing document is not an error.
func (x *ProjectIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("remove project %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove project %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over title and description and returns the
// stored projects in relevance order.
func (x *ProjectIndex) Search(ctx context.Context, q string, size int) ([]entity.Project, error) {
	if size <= 0 || size > 100 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search projects: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source entity.Project `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Project, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p := h.Source
		if p.ID == "" {
			p.ID = h.ID
		}
		out = append(out, p)
	}
	if x.logger != nil {
		x.logger.WithFields(logrus.Fields{"q": q, "hits": len(out)}).Debug("project search")
	}
	return out, nil
}

var _ gateway.ProjectIndex = (*ProjectIndex)(nil)
