package webapi

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spboyer/llmcompare/internal/cost"
	"github.com/spboyer/llmcompare/internal/models"
	"github.com/spboyer/llmcompare/internal/query"
)

// parseList reads a repeated and/or comma-separated parameter. It returns
// nil when the parameter is absent and an empty slice when it is present
// but blank.
func parseList(v url.Values, key string) []string {
	raw, ok := v[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func parseFloat(v url.Values, key string, def float64) (float64, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", key)
	}
	return f, nil
}

func parseInt(v url.Values, key string, def int64) (int64, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

// parseQuery maps list parameters onto a query. Parameter names match the
// JSON names of query.Query.
func parseQuery(v url.Values) (query.Query, error) {
	q := query.Query{
		Text:           v.Get("search"),
		Providers:      parseList(v, "providers"),
		Years:          parseList(v, "years"),
		ContextBuckets: parseList(v, "contextBuckets"),
		Capabilities:   parseList(v, "capabilities"),
		IDs:            parseList(v, "ids"),
		Sort:           query.SortKey(v.Get("sort")),
		Direction:      query.Direction(v.Get("order")),
	}

	var err error
	if q.MinMMLU, err = parseFloat(v, "minMmlu", 0); err != nil {
		return query.Query{}, err
	}
	if q.MinHumanEval, err = parseFloat(v, "minHumanEval", 0); err != nil {
		return query.Query{}, err
	}
	if q.Sort, err = query.ParseSortKey(string(q.Sort)); err != nil {
		return query.Query{}, err
	}
	if q.Direction, err = query.ParseDirection(string(q.Direction)); err != nil {
		return query.Query{}, err
	}
	return q, q.Validate()
}

// parseConstraints reads recommender constraints. A missing maxCost means
// no budget.
func parseConstraints(v url.Values) (models.Constraints, error) {
	c := models.DefaultConstraints()

	var err error
	if c.MaxCostPer1M, err = parseFloat(v, "maxCost", math.Inf(1)); err != nil {
		return c, err
	}
	if c.MinQualityScore, err = parseFloat(v, "minQuality", 0); err != nil {
		return c, err
	}
	minContext, err := parseInt(v, "minContext", 0)
	if err != nil {
		return c, err
	}
	c.MinContextWindow = int(minContext)
	return c, nil
}

// parseUsage overlays request parameters on def.
func parseUsage(v url.Values, def cost.Usage) (cost.Usage, error) {
	u := def
	var err error
	if u.InputTokens, err = parseInt(v, "inputTokens", def.InputTokens); err != nil {
		return u, err
	}
	if u.OutputTokens, err = parseInt(v, "outputTokens", def.OutputTokens); err != nil {
		return u, err
	}
	if u.RequestsPerDay, err = parseInt(v, "requestsPerDay", def.RequestsPerDay); err != nil {
		return u, err
	}
	days, err := parseInt(v, "days", int64(def.Days))
	if err != nil {
		return u, err
	}
	u.Days = int(days)
	return u, nil
}
