package mist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// pagedHandler serves n items as pages of the requested limit, with the
// X-Page-* headers the real cloud sends.
func pagedHandler(t *testing.T, total int) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if limit <= 0 || page <= 0 {
			t.Errorf("bad paging params: limit=%q page=%q", r.URL.Query().Get("limit"), r.URL.Query().Get("page"))
		}

		start := (page - 1) * limit
		end := start + limit
		if end > total {
			end = total
		}
		items := []map[string]string{}
		for i := start; i < end; i++ {
			items = append(items, map[string]string{"id": fmt.Sprintf("dev-%04d", i)})
		}

		w.Header().Set("X-Page-Limit", strconv.Itoa(limit))
		w.Header().Set("X-Page-Page", strconv.Itoa(page))
		w.Header().Set("X-Page-Total", strconv.Itoa(total))
		json.NewEncoder(w).Encode(items)
	})
}

func TestPager_CollectsAllPagesExactly(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		pages int
	}{
		{"multiple full pages", 30, 10, 3},
		{"ragged last page", 25, 10, 3},
		{"single page", 7, 10, 1},
		{"boundary aligned", 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(pagedHandler(t, tt.total))
			defer srv.Close()
			c := NewClient(&Credentials{Host: srv.URL, APIToken: "x"})

			pager := c.NewPager("/api/v1/orgs/o1/stats/devices", nil, tt.limit)
			seen := map[string]bool{}
			pages := 0
			for {
				items, err := pager.Next(context.Background())
				if err != nil {
					t.Fatal(err)
				}
				if items == nil {
					break
				}
				pages++
				for _, raw := range items {
					var item struct {
						ID string `json:"id"`
					}
					if err := json.Unmarshal(raw, &item); err != nil {
						t.Fatal(err)
					}
					if seen[item.ID] {
						t.Errorf("duplicate item %s", item.ID)
					}
					seen[item.ID] = true
				}
			}

			if len(seen) != tt.total {
				t.Errorf("collected %d items, want %d", len(seen), tt.total)
			}
			if pages != tt.pages {
				t.Errorf("fetched %d pages, want %d", pages, tt.pages)
			}
			if pager.Total() != tt.total {
				t.Errorf("Total() = %d, want %d", pager.Total(), tt.total)
			}
		})
	}
}

func TestPager_EmptyListing(t *testing.T) {
	srv := httptest.NewServer(pagedHandler(t, 0))
	defer srv.Close()
	c := NewClient(&Credentials{Host: srv.URL, APIToken: "x"})

	pager := c.NewPager("/api/v1/sites/s1/stats/devices", nil, 100)
	items, err := pager.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if items != nil {
		t.Errorf("empty listing returned items: %v", items)
	}
}

func TestGatewayPagerAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "gateway" {
			t.Errorf("type param = %q, want gateway", got)
		}
		w.Header().Set("X-Page-Total", "2")
		fmt.Fprint(w, `[
			{"id":"gw1","name":"branch-a","site_id":"s1","version":"23.4R1",
			 "module_stat":[{"serial":"A1","mac":"aa:bb","model":"SRX320","version":"23.4R1","backup_version":"23.2R1"}]},
			{"id":"gw2","name":"branch-b","site_id":"s1","version":"23.4R1",
			 "module_stat":[{"serial":"B1","mac":"cc:dd","model":"SRX340","version":"23.4R1","backup_version":"23.4R1"}],
			 "module2_stat":[{"serial":"B2","mac":"ee:ff","model":"SRX340","version":"23.4R1","backup_version":"23.4R1"}]}
		]`)
	}))
	defer srv.Close()
	c := NewClient(&Credentials{Host: srv.URL, APIToken: "x"})

	gws, err := c.ListSiteGatewayStats("s1").All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(gws) != 2 {
		t.Fatalf("got %d gateways, want 2", len(gws))
	}
	if gws[0].ModuleStat[0].Serial != "A1" {
		t.Errorf("module_stat serial = %q", gws[0].ModuleStat[0].Serial)
	}
	if len(gws[1].Module2Stat) != 1 || gws[1].Module2Stat[0].Serial != "B2" {
		t.Errorf("module2_stat = %+v", gws[1].Module2Stat)
	}
}
