package pagination

import "testing"

func TestNormalize(t *testing.T) {
	got := Params{}.Normalize()
	if got.Page != 1 || got.PageSize != DefaultPageSize {
		t.Fatalf("unexpected defaults %+v", got)
	}
	got = Params{Page: 3, PageSize: 1000}.Normalize()
	if got.Page != 3 || got.PageSize != MaxPageSize {
		t.Fatalf("expected page size to be capped, got %+v", got)
	}
}

func TestBounds(t *testing.T) {
	cases := []struct {
		params     Params
		total      int
		start, end int
	}{
		{Params{Page: 1, PageSize: 5}, 12, 0, 5},
		{Params{Page: 3, PageSize: 5}, 12, 10, 12},
		{Params{Page: 4, PageSize: 5}, 12, 12, 12},
		{Params{}, 0, 0, 0},
	}
	for _, tc := range cases {
		start, end := tc.params.Bounds(tc.total)
		if start != tc.start || end != tc.end {
			t.Fatalf("%+v over %d: expected [%d,%d), got [%d,%d)", tc.params, tc.total, tc.start, tc.end, start, end)
		}
	}
}

func TestDescribe(t *testing.T) {
	page := Params{Page: 2, PageSize: 5}.Describe(11)
	if page.TotalPages != 3 || page.TotalItems != 11 || page.Page != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if TotalPages(0, 5) != 0 {
		t.Fatal("empty result has no pages")
	}
}
