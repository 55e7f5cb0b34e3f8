package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(links []Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Label
	}
	return out
}

func numbered(from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

func TestPaginator_SinglePage(t *testing.T) {
	p := New([]any{"a", "b"}, 2, 15)

	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 1, p.LastPage())
	assert.Equal(t, "/", p.Path())
	assert.Equal(t, "/?page=1", p.URL(1))
	assert.Nil(t, p.PreviousPageURL())
	assert.Nil(t, p.NextPageURL())
	assert.False(t, p.HasPages())

	assert.Equal(t, map[string]any{
		"current_page": 1,
		"from":         1,
		"last_page":    1,
		"links": []any{
			map[string]any{"url": nil, "label": "&laquo; Previous", "active": false},
			map[string]any{"url": "/?page=1", "label": "1", "active": true},
			map[string]any{"url": nil, "label": "Next &raquo;", "active": false},
		},
		"path":     "/",
		"per_page": 15,
		"to":       2,
		"total":    2,
	}, p.Meta())

	assert.Equal(t, map[string]any{
		"first": "/?page=1",
		"last":  "/?page=1",
		"prev":  nil,
		"next":  nil,
	}, p.LinksMeta())
}

func TestPaginator_EmptyPage(t *testing.T) {
	p := New(nil, 0, 10)

	assert.Equal(t, 1, p.LastPage())
	assert.Nil(t, p.FirstItem())
	assert.Nil(t, p.LastItem())
	assert.Nil(t, p.Meta()["from"])
	assert.Nil(t, p.Meta()["to"])
}

func TestPaginator_MiddlePage(t *testing.T) {
	p := New([]any{1, 2, 3, 4, 5}, 23, 5, WithCurrentPage(3), WithPath("/posts/"))

	assert.Equal(t, 5, p.LastPage())
	require.NotNil(t, p.FirstItem())
	assert.Equal(t, 11, *p.FirstItem())
	assert.Equal(t, 15, *p.LastItem())
	assert.Equal(t, "/posts?page=2", *p.PreviousPageURL())
	assert.Equal(t, "/posts?page=4", *p.NextPageURL())
	assert.True(t, p.HasPages())
	assert.True(t, p.HasMorePages())

	links := p.Links()
	assert.Equal(t, append(append([]string{PreviousLabel}, numbered(1, 5)...), NextLabel), labels(links))
	assert.True(t, links[3].Active)
	assert.False(t, links[2].Active)
}

func TestPaginator_QueryInPathAndPageName(t *testing.T) {
	p := New([]any{1}, 1, 1, WithPath("/posts?sort=title"), WithPageName("p"))
	assert.Equal(t, "/posts?sort=title&p=1", p.URL(1))
	assert.Equal(t, "/posts?sort=title&p=1", p.URL(0))
}

func TestPaginator_InvalidInputsAreClamped(t *testing.T) {
	p := New([]any{1}, 1, 0, WithCurrentPage(-2))
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 15, p.PerPage())
}

func TestPaginator_SliderWindows(t *testing.T) {
	gap := []string{"..."}

	tests := []struct {
		name    string
		current int
		want    []string
	}{
		{
			name:    "close to beginning",
			current: 1,
			want:    concat(numbered(1, 10), gap, numbered(19, 20)),
		},
		{
			name:    "full slider",
			current: 10,
			want:    concat(numbered(1, 2), gap, numbered(7, 13), gap, numbered(19, 20)),
		},
		{
			name:    "close to ending",
			current: 18,
			want:    concat(numbered(1, 2), gap, numbered(11, 20)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New([]any{1}, 200, 10, WithCurrentPage(tt.current))
			got := labels(p.Links())
			assert.Equal(t, PreviousLabel, got[0])
			assert.Equal(t, NextLabel, got[len(got)-1])
			assert.Equal(t, tt.want, got[1:len(got)-1])
		})
	}
}

func TestPaginator_SmallSliderBelowThreshold(t *testing.T) {
	p := New([]any{1}, 130, 10, WithCurrentPage(7))
	got := labels(p.Links())
	assert.Equal(t, numbered(1, 13), got[1:len(got)-1])
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
