package listview

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type banner struct {
	Title  string
	Status string
	Order  int
}

func bannerView() *View[*banner] {
	return New(map[string]Accessor[*banner]{
		"title":  func(b *banner) string { return b.Title },
		"status": func(b *banner) string { return b.Status },
		"order":  func(b *banner) string { return fmt.Sprint(b.Order) },
	}, "title")
}

func titles(items []*banner) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Title)
	}
	return out
}

func TestFilterCombinesSearchAndEquality(t *testing.T) {
	items := []*banner{
		{Title: "Home Loan Festival", Status: "active"},
		{Title: "Personal loan offer", Status: "inactive"},
		nil,
		{Title: "Gold loan", Status: "Active"},
		{Title: "Credit cards", Status: "active"},
	}

	out := bannerView().Filter(items, "LOAN", map[string]string{"status": "active"})

	assert.Equal(t, []string{"Home Loan Festival", "Gold loan"}, titles(out))
}

func TestFilterUnknownEqualityColumnMatchesNothing(t *testing.T) {
	items := []*banner{{Title: "a"}}
	assert.Empty(t, bannerView().Filter(items, "", map[string]string{"missing": "x"}))
	assert.Len(t, bannerView().Filter(items, "", map[string]string{"missing": ""}), 1)
}

func TestSortIsCaseInsensitiveAndStable(t *testing.T) {
	items := []*banner{
		{Title: "beta", Status: "1"},
		{Title: "Alpha", Status: "2"},
		{Title: "alpha", Status: "3"},
		{Title: "Gamma", Status: "4"},
	}

	out := bannerView().Sort(items, "title", Asc)

	assert.Equal(t, []string{"Alpha", "alpha", "beta", "Gamma"}, titles(out))
	assert.Equal(t, "beta", items[0].Title, "input must not be reordered")
}

func TestSortNumericColumns(t *testing.T) {
	items := []*banner{{Title: "a", Order: 10}, {Title: "b", Order: 2}, {Title: "c", Order: 33}}

	out := bannerView().Sort(items, "order", Asc)

	assert.Equal(t, []string{"b", "a", "c"}, titles(out))
}

func TestSortDescendingIsReverseOfAscending(t *testing.T) {
	items := []*banner{{Title: "delta"}, {Title: "Alpha"}, {Title: "charlie"}, {Title: "Bravo"}}
	v := bannerView()

	asc := titles(v.Sort(items, "title", Asc))
	desc := titles(v.Sort(items, "title", Desc))
	slices.Reverse(asc)

	assert.Equal(t, asc, desc)
}

func TestSortMixedValuesIsIndependentOfInputOrder(t *testing.T) {
	want := []string{"-3", "2.5", "9", "10", "", "1a", "abc", "B", "Inf", "NaN"}
	reversed := slices.Clone(want)
	slices.Reverse(reversed)
	v := bannerView()

	for seed := int64(0); seed < 50; seed++ {
		values := slices.Clone(want)
		rand.New(rand.NewSource(seed)).Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
		items := make([]*banner, len(values))
		for i, title := range values {
			items[i] = &banner{Title: title}
		}

		assert.Equal(t, want, titles(v.Sort(items, "title", Asc)), "input %v", values)
		assert.Equal(t, reversed, titles(v.Sort(items, "title", Desc)), "input %v", values)
	}
}

func TestCompareIsTransitiveAcrossNumbersAndText(t *testing.T) {
	values := []string{"9", "10", "1a", "", "0.5", "-2", "x", "NaN", "1e2"}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, -compare(b, a), compare(a, b), "%q vs %q", a, b)
			for _, c := range values {
				if compare(a, b) < 0 && compare(b, c) < 0 {
					assert.Negative(t, compare(a, c), "%q < %q < %q", a, b, c)
				}
			}
		}
	}
}

func TestToggleSort(t *testing.T) {
	v := bannerView()

	key, dir := v.ToggleSort("title")
	assert.Equal(t, "title", key)
	assert.Equal(t, Asc, dir)

	_, dir = v.ToggleSort("title")
	assert.Equal(t, Desc, dir)

	key, dir = v.ToggleSort("status")
	assert.Equal(t, "status", key)
	assert.Equal(t, Asc, dir)
}

func TestApplyUsesViewSortStateAndPages(t *testing.T) {
	var items []*banner
	for i := 1; i <= 7; i++ {
		items = append(items, &banner{Title: fmt.Sprintf("banner %d", i), Status: "active"})
	}
	v := bannerView()
	v.ToggleSort("title")
	v.ToggleSort("title")

	res := v.Apply(items, Query{Page: 2, PageSize: 3})

	assert.Equal(t, 7, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, []string{"banner 4", "banner 3", "banner 2"}, titles(res.Items))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{5}, Paginate(items, 3, 2).Items)
	assert.Empty(t, Paginate(items, 9, 2).Items)

	all := Paginate(items, 0, 0)
	assert.Equal(t, items, all.Items)
	assert.Equal(t, 1, all.TotalPages)

	empty := Paginate([]int{}, 1, HistoryPageSize)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, 0, empty.Total)
}
