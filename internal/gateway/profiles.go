package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

// Payload is the body of /api/config/save.
type Payload struct {
	Profession taxonomy.ID     `json:"profession"`
	Department taxonomy.ID     `json:"department"`
	Role       taxonomy.ID     `json:"role"`
	Name       string          `json:"name"`
	Skive      skive.Ratings   `json:"skive"`
	DayToDay   []string        `json:"day_to_day"`
	KRAs       []string        `json:"kras"`
	Objectives *objectives.Map `json:"objectives"`
}

// SaveResult is the response of /api/config/save.
type SaveResult struct {
	Status          string `json:"status"`
	ProfileID       int64  `json:"profile_id"`
	RatingsInserted int    `json:"ratings_inserted"`
}

// Save persists a profile and returns its id.
func (c *Client) Save(ctx context.Context, p Payload) (SaveResult, error) {
	var out SaveResult
	if err := c.do(ctx, http.MethodPost, "/api/config/save", nil, p, &out); err != nil {
		return SaveResult{}, err
	}
	if out.ProfileID == 0 {
		return SaveResult{}, fmt.Errorf("%w: save response has no profile_id", ErrUnavailable)
	}
	return out, nil
}

// Summary is one row of /api/simulations.
type Summary struct {
	ID           int64  `json:"id"`
	ProfileName  string `json:"profile_name"`
	SpecificRole string `json:"specific_role"`
	Profession   string `json:"profession"`
	Department   string `json:"department"`
	UpdatedAt    string `json:"updated_at"`
	Archetype    string `json:"archetype"`
}

// Simulations lists saved profiles.
func (c *Client) Simulations(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := c.do(ctx, http.MethodGet, "/api/simulations", nil, nil, &out)
	return out, err
}

// Record is a saved profile as returned by /api/simulations/<id>. Any of
// the content fields may be missing.
type Record struct {
	ID           int64       `json:"id"`
	ProfileName  string      `json:"profile_name"`
	ProfessionID taxonomy.ID `json:"profession_id"`
	DepartmentID taxonomy.ID `json:"department_id"`
	RoleID       taxonomy.ID `json:"role_id"`
	Profession   string      `json:"profession"`
	Department   string      `json:"department"`
	SpecificRole string      `json:"specific_role"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`

	Skive      *skive.Ratings  `json:"skive"`
	DayToDay   stringList      `json:"day_to_day"`
	KRAs       stringList      `json:"kras"`
	Objectives *objectives.Map `json:"objectives"`
}

// Simulation loads one saved profile.
func (c *Client) Simulation(ctx context.Context, id int64) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, "/api/simulations/"+strconv.FormatInt(id, 10), nil, nil, &out)
	return out, err
}

// stringList decodes either a JSON array or a JSON-encoded array string,
// since the API stores lists as text columns.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return fmt.Errorf("list column: %w", err)
	}
	*l = items
	return nil
}
