package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	page, limit := 0, 0
	errs := Normalize(&page, &limit, 5)
	assert.Empty(t, errs)
	assert.Equal(t, 1, page)
	assert.Equal(t, 5, limit)

	page, limit = -1, 500
	errs = Normalize(&page, &limit, 5)
	assert.Len(t, errs, 2)
}

func TestShowing(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		want        string
	}{
		{1, 5, 0, "0 of 0"},
		{1, 5, 3, "1-3 of 3"},
		{2, 5, 12, "6-10 of 12"},
		{3, 5, 12, "11-12 of 12"},
		{9, 5, 12, "0 of 12"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Showing(c.page, c.limit, c.total))
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 3, TotalPages(11, 5))
	assert.Equal(t, 0, TotalPages(10, 0))
}
