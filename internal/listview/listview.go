// Package listview searches, filters, sorts and pages an already fetched
// collection. The same View is used by every entity list in the console.
package listview

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Direction of a sort
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// HistoryPageSize is the fixed page size of the server-paginated history view
const HistoryPageSize = 50

// Accessor extracts a named column as a string. Missing values return "".
type Accessor[T any] func(T) string

// View knows how to read the columns of T
type View[T any] struct {
	columns map[string]Accessor[T]
	search  []string

	sortKey string
	dir     Direction
}

// New creates a view over the given columns. search names the columns that
// free-text search looks at.
func New[T any](columns map[string]Accessor[T], search ...string) *View[T] {
	return &View[T]{columns: columns, search: search, dir: Asc}
}

// Query is one request against a view
type Query struct {
	Search    string
	Equals    map[string]string // column -> exact value, case-insensitive
	SortKey   string
	Direction Direction
	Page      int // 1-based; 0 disables paging
	PageSize  int
}

// Result is a filtered, sorted page
type Result[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// ToggleSort selects key as the sort column. Selecting the current key flips
// the direction; selecting a new key resets to ascending.
func (v *View[T]) ToggleSort(key string) (string, Direction) {
	if key == v.sortKey {
		if v.dir == Asc {
			v.dir = Desc
		} else {
			v.dir = Asc
		}
	} else {
		v.sortKey = key
		v.dir = Asc
	}
	return v.sortKey, v.dir
}

// SortState returns the current sort column and direction
func (v *View[T]) SortState() (string, Direction) {
	return v.sortKey, v.dir
}

// Filter keeps records whose search columns contain term (case-insensitive)
// and whose columns equal every value in equals. Nil records never match.
func (v *View[T]) Filter(items []T, term string, equals map[string]string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if isNil(item) {
			continue
		}
		if term != "" && !v.matchesSearch(item, term) {
			continue
		}
		if !v.matchesEquals(item, equals) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (v *View[T]) matchesSearch(item T, term string) bool {
	for _, col := range v.search {
		get, ok := v.columns[col]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(get(item)), term) {
			return true
		}
	}
	return false
}

func (v *View[T]) matchesEquals(item T, equals map[string]string) bool {
	for col, want := range equals {
		if want == "" {
			continue
		}
		get, ok := v.columns[col]
		if !ok {
			return false
		}
		if !strings.EqualFold(strings.TrimSpace(get(item)), strings.TrimSpace(want)) {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy of items. Unknown keys leave the order
// unchanged.
func (v *View[T]) Sort(items []T, key string, dir Direction) []T {
	out := append([]T(nil), items...)
	get, ok := v.columns[key]
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(value(get, out[i]), value(get, out[j]))
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Apply runs filter, sort and paging in that order. An empty SortKey uses the
// view's current sort state.
func (v *View[T]) Apply(items []T, q Query) Result[T] {
	filtered := v.Filter(items, q.Search, q.Equals)

	key, dir := q.SortKey, q.Direction
	if key == "" {
		key, dir = v.sortKey, v.dir
	}
	if dir == "" {
		dir = Asc
	}
	sorted := v.Sort(filtered, key, dir)

	return Paginate(sorted, q.Page, q.PageSize)
}

// Paginate slices items into a 1-based page. page <= 0 or size <= 0 returns
// everything as a single page.
func Paginate[T any](items []T, page, size int) Result[T] {
	total := len(items)
	if page <= 0 || size <= 0 {
		return Result[T]{Items: items, Total: total, Page: 1, PageSize: total, TotalPages: 1}
	}
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return Result[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}

func value[T any](get Accessor[T], item T) string {
	if isNil(item) {
		return ""
	}
	return get(item)
}

// compare is a total order: finite numbers first, by value, then everything
// else case-insensitively.
func compare(a, b string) int {
	fa, numA := number(a)
	fb, numB := number(b)
	switch {
	case numA && numB:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case numA:
		return -1
	case numB:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func number(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
