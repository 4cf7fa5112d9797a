package mist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultPageLimit matches what the listing endpoints accept at most.
const DefaultPageLimit = 1000

// Pager walks a paginated listing endpoint one page at a time, so large
// device fleets never have to be buffered beyond the caller's needs.
// Mist paginates with X-Page-Limit / X-Page-Page / X-Page-Total response
// headers; the next page exists while page*limit < total.
type Pager struct {
	c      *Client
	path   string
	params url.Values
	limit  int

	page  int
	total int
	done  bool
}

// NewPager creates a Pager over path with the given fixed query parameters.
func (c *Client) NewPager(path string, params url.Values, limit int) *Pager {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	p := url.Values{}
	for k, vs := range params {
		p[k] = vs
	}
	return &Pager{c: c, path: path, params: p, limit: limit}
}

// Next fetches the next page and returns its raw items. It returns
// (nil, nil) when the listing is exhausted.
func (p *Pager) Next(ctx context.Context) ([]json.RawMessage, error) {
	if p.done {
		return nil, nil
	}
	p.page++

	params := url.Values{}
	for k, vs := range p.params {
		params[k] = vs
	}
	params.Set("limit", strconv.Itoa(p.limit))
	params.Set("page", strconv.Itoa(p.page))

	body, resp, err := p.c.do(ctx, http.MethodGet, p.path, params, nil)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parsing page %d of %s: %w", p.page, p.path, err)
	}

	p.total = headerInt(resp, "X-Page-Total")
	if p.total == 0 || p.page*p.limit >= p.total || len(items) == 0 {
		p.done = true
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

// Total returns the server-reported total item count, known after the
// first page has been fetched.
func (p *Pager) Total() int {
	return p.total
}

func headerInt(resp *http.Response, name string) int {
	if resp == nil {
		return 0
	}
	n, err := strconv.Atoi(resp.Header.Get(name))
	if err != nil {
		return 0
	}
	return n
}
