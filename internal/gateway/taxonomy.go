package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/abhisek/prism/internal/taxonomy"
)

var _ taxonomy.Fetcher = (*Client)(nil)

// Professions lists every profession.
func (c *Client) Professions(ctx context.Context) ([]taxonomy.Option, error) {
	var out []taxonomy.Option
	err := c.do(ctx, http.MethodGet, "/api/professions", nil, nil, &out)
	return out, err
}

// Departments lists the departments of one profession.
func (c *Client) Departments(ctx context.Context, professionID taxonomy.ID) ([]taxonomy.Option, error) {
	if professionID == 0 {
		return nil, taxonomy.ErrParentUnset
	}
	var out []taxonomy.Option
	q := url.Values{"profession_id": {strconv.FormatInt(int64(professionID), 10)}}
	err := c.do(ctx, http.MethodGet, "/api/departments", q, nil, &out)
	return out, err
}

// Roles lists the roles of one department.
func (c *Client) Roles(ctx context.Context, departmentID taxonomy.ID) ([]taxonomy.Option, error) {
	if departmentID == 0 {
		return nil, taxonomy.ErrParentUnset
	}
	var out []taxonomy.Option
	q := url.Values{"department_id": {strconv.FormatInt(int64(departmentID), 10)}}
	err := c.do(ctx, http.MethodGet, "/api/roles", q, nil, &out)
	return out, err
}
