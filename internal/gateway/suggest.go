package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

var (
	_ objectives.Generator = (*Client)(nil)
	_ lists.Generator      = (*Client)(nil)
)

type objectivesRequest struct {
	Key  taxonomy.Key `json:"key"`
	Path skive.Path   `json:"path"`
}

type objectivesResponse struct {
	Levels objectives.Levels `json:"levels"`
	Source string            `json:"source"`
}

// SuggestObjectives asks the API for the three objective tiers of one
// competency leaf.
func (c *Client) SuggestObjectives(ctx context.Context, key taxonomy.Key, p skive.Path) (objectives.Suggestion, error) {
	var resp objectivesResponse
	if err := c.do(ctx, http.MethodPost, "/api/ai/objectives", nil, objectivesRequest{Key: key, Path: p}, &resp); err != nil {
		return objectives.Suggestion{}, err
	}
	if resp.Levels.Empty() {
		return objectives.Suggestion{}, fmt.Errorf("%w: /api/ai/objectives returned no levels", ErrUnavailable)
	}
	return objectives.Suggestion{Levels: resp.Levels, Source: provenance.Parse(resp.Source)}, nil
}

type listResponse struct {
	Items       []string `json:"items"`
	Suggestions []string `json:"suggestions"`
	Source      string   `json:"source"`
}

// SuggestList asks the API for a day-to-day or KRA list. The response may
// carry the list under "items" or "suggestions".
func (c *Client) SuggestList(ctx context.Context, kind lists.Kind, key taxonomy.Key) (lists.Suggestion, error) {
	var endpoint string
	switch kind {
	case lists.DayToDay:
		endpoint = "/api/ai/day_to_day"
	case lists.KRAs:
		endpoint = "/api/ai/kras"
	default:
		return lists.Suggestion{}, fmt.Errorf("unknown list kind %q", kind)
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodPost, endpoint, nil, key, &resp); err != nil {
		return lists.Suggestion{}, err
	}
	items := resp.Items
	if len(items) == 0 {
		items = resp.Suggestions
	}
	src := provenance.Parse(resp.Source)
	if src == provenance.None {
		src = provenance.AI
	}
	return lists.Suggestion{Items: items, Source: src}, nil
}
