package elasticsearch

import "strings"

type searchRequest struct {
	Query  query                  `json:"query"`
	Source []string               `json:"_source"`
	From   int                    `json:"from"`
	Size   int                    `json:"size"`
	Sort   []map[string]sortOrder `json:"sort"`
}

type query struct {
	Bool boolQuery `json:"bool"`
}

type boolQuery struct {
	Must   []clause `json:"must,omitempty"`
	Filter []clause `json:"filter,omitempty"`
}

type clause struct {
	MultiMatch *multiMatch    `json:"multi_match,omitempty"`
	Term       map[string]any `json:"term,omitempty"`
}

type multiMatch struct {
	Query    string   `json:"query"`
	Fields   []string `json:"fields"`
	Type     string   `json:"type"`
	Operator string   `json:"operator"`
}

type sortOrder struct {
	Order string `json:"order"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source struct {
				ID int64 `json:"id"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildVideoQuery(q string, from, size int) searchRequest {
	req := searchRequest{
		Query: query{Bool: boolQuery{
			Filter: []clause{{Term: map[string]any{"isPublished": true}}},
		}},
		Source: []string{"id"},
		From:   from,
		Size:   size,
	}

	q = strings.TrimSpace(q)
	if q != "" {
		req.Query.Bool.Must = []clause{{MultiMatch: &multiMatch{
			Query:    q,
			Fields:   []string{"title^3", "description"},
			Type:     "best_fields",
			Operator: "or",
		}}}
		req.Sort = []map[string]sortOrder{
			{"_score": {Order: "desc"}},
			{"createdAt": {Order: "desc"}},
		}
	} else {
		req.Sort = []map[string]sortOrder{{"createdAt": {Order: "desc"}}}
	}
	return req
}
