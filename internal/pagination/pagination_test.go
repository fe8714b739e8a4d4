package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit values", query: "page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "non-numeric falls back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: 10},
		{name: "zero falls back", query: "page=0&limit=0", wantPage: 1, wantLimit: 10},
		{name: "negative falls back", query: "page=-2&limit=-5", wantPage: 1, wantLimit: 10},
		{name: "partial", query: "page=2", wantPage: 2, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			p := ParseParams(q)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 28, Params{Page: 5, Limit: 7}.Offset())
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name           string
		params         Params
		total          int64
		wantTotalPages int64
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{name: "empty set", params: Params{Page: 1, Limit: 10}, total: 0, wantTotalPages: 0},
		{name: "exact single page", params: Params{Page: 1, Limit: 10}, total: 10, wantTotalPages: 1},
		{name: "ceil rounds up", params: Params{Page: 1, Limit: 10}, total: 11, wantTotalPages: 2, wantHasNext: true},
		{name: "middle page", params: Params{Page: 2, Limit: 10}, total: 35, wantTotalPages: 4, wantHasNext: true, wantHasPrev: true},
		{name: "last page", params: Params{Page: 4, Limit: 10}, total: 35, wantTotalPages: 4, wantHasPrev: true},
		{name: "past the tail", params: Params{Page: 9, Limit: 10}, total: 35, wantTotalPages: 4, wantHasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(tt.params, tt.total)
			assert.Equal(t, tt.total, m.Total)
			assert.Equal(t, tt.params.Page, m.Page)
			assert.Equal(t, tt.params.Limit, m.Limit)
			assert.Equal(t, tt.wantTotalPages, m.TotalPages)
			assert.Equal(t, tt.wantHasNext, m.HasNext)
			assert.Equal(t, tt.wantHasPrev, m.HasPrev)
		})
	}
}
