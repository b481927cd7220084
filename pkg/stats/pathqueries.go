package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/travigo/subway/pkg/elastic_client"
)

const pathQueriesIndex = "path-queries"

type PathQueryStats struct {
	TotalQueries int
	AverageFare  float64

	Criteria map[string]int
	Riders   map[string]int
}

type pathQueriesESResponse struct {
	Error map[string]interface{}

	Hits struct {
		Total struct {
			Value int
		}
	}

	Aggregations struct {
		AverageFare struct {
			Value *float64
		} `json:"average_fare"`
		Criteria termsAggregation
		Riders   termsAggregation
	}
}

type termsAggregation struct {
	Buckets []struct {
		Key      string
		DocCount int `json:"doc_count"`
	}
}

func (t termsAggregation) counts() map[string]int {
	counts := map[string]int{}
	for _, bucket := range t.Buckets {
		counts[bucket.Key] = bucket.DocCount
	}
	return counts
}

func pathQueriesQuery(window string) map[string]interface{} {
	return map[string]interface{}{
		"track_total_hits": true,
		"query": map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"gte": fmt.Sprintf("now-%s", window),
				},
			},
		},
		"aggs": map[string]interface{}{
			"average_fare": map[string]interface{}{
				"avg": map[string]interface{}{
					"field": "fare",
				},
			},
			"criteria": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "criterion.keyword",
				},
			},
			"riders": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "rider.keyword",
				},
			},
		},
	}
}

func parsePathQueriesResponse(body io.Reader) (*PathQueryStats, error) {
	var response pathQueriesESResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, fmt.Errorf("path query stats search failed: %v", response.Error["reason"])
	}

	queryStats := &PathQueryStats{
		TotalQueries: response.Hits.Total.Value,
		Criteria:     response.Aggregations.Criteria.counts(),
		Riders:       response.Aggregations.Riders.counts(),
	}
	if response.Aggregations.AverageFare.Value != nil {
		queryStats.AverageFare = *response.Aggregations.AverageFare.Value
	}

	return queryStats, nil
}

// GetPathQueryStats aggregates the indexed path queries over a window such as
// "1d". It returns nil when Elasticsearch is not configured.
func GetPathQueryStats(ctx context.Context, window string) (*PathQueryStats, error) {
	if elastic_client.Client == nil {
		return nil, nil
	}

	var queryBytes bytes.Buffer
	if err := json.NewEncoder(&queryBytes).Encode(pathQueriesQuery(window)); err != nil {
		return nil, err
	}

	res, err := elastic_client.Client.Search(
		elastic_client.Client.Search.WithContext(ctx),
		elastic_client.Client.Search.WithIndex(pathQueriesIndex),
		elastic_client.Client.Search.WithBody(&queryBytes),
		elastic_client.Client.Search.WithSize(0),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	return parsePathQueriesResponse(res.Body)
}
