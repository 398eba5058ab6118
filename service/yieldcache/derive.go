package yieldcache

import (
	"sort"
	"strings"

	"github.com/x-xyz/yieldbot/domain/yield"
)

// Derivations never mutate the input, every result is a fresh slice.

// FilterByTvl keeps records with tvl >= floor, in input order
func FilterByTvl(records []yield.Record, floor float64) []yield.Record {
	res := make([]yield.Record, 0, len(records))
	for _, r := range records {
		if r.Tvl >= floor {
			res = append(res, r)
		}
	}
	return res
}

// SortByAPY sorts by total apy descending. Ties keep their input order.
func SortByAPY(records []yield.Record) []yield.Record {
	res := make([]yield.Record, len(records))
	copy(res, records)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].TotalAPY() > res[j].TotalAPY()
	})
	return res
}

// Take returns at most n leading records
func Take(records []yield.Record, n int) []yield.Record {
	if n < 0 {
		n = 0
	}
	if len(records) > n {
		records = records[:n]
	}
	res := make([]yield.Record, len(records))
	copy(res, records)
	return res
}

// TopN is filter by tvl, sort, take n
func TopN(records []yield.Record, floor float64, n int) []yield.Record {
	return Take(SortByAPY(FilterByTvl(records, floor)), n)
}

// TopOne returns the best record over the tvl floor
func TopOne(records []yield.Record, floor float64) (yield.Record, bool) {
	top := TopN(records, floor, 1)
	if len(top) == 0 {
		return yield.Record{}, false
	}
	return top[0], true
}

func AssetOf(r yield.Record) string { return r.Asset }

func ChainOf(r yield.Record) string { return r.Chain }

// Distinct returns the sorted distinct non empty values of field
func Distinct(records []yield.Record, field func(yield.Record) string) []string {
	seen := map[string]struct{}{}
	res := []string{}
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	sort.Strings(res)
	return res
}

// GroupKeepMax keeps the record with the highest total apy per key. Groups
// are returned in order of first appearance, the first record wins a tie.
func GroupKeepMax(records []yield.Record, key func(yield.Record) string) []yield.Record {
	index := map[string]int{}
	res := []yield.Record{}
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			index[k] = len(res)
			res = append(res, r)
			continue
		}
		if r.TotalAPY() > res[i].TotalAPY() {
			res[i] = r
		}
	}
	return res
}

// ScopedTop narrows records with match, applies the tvl floor, keeps the best
// record per groupBy value and returns the n best of those.
func ScopedTop(records []yield.Record, match func(yield.Record) bool, groupBy func(yield.Record) string, floor float64, n int) []yield.Record {
	matched := []yield.Record{}
	for _, r := range records {
		if match(r) {
			matched = append(matched, r)
		}
	}
	return Take(SortByAPY(GroupKeepMax(FilterByTvl(matched, floor), groupBy)), n)
}

// AssetMatcher matches the asset symbol exactly
func AssetMatcher(asset string) func(yield.Record) bool {
	return func(r yield.Record) bool {
		return r.Asset == asset
	}
}

func normalizeChain(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// ChainMatcher matches chain names case insensitively. When nothing in
// records matches that way it falls back to a substring match in either
// direction with underscores removed.
func ChainMatcher(records []yield.Record, chain string) func(yield.Record) bool {
	exact := func(r yield.Record) bool {
		return strings.EqualFold(r.Chain, chain)
	}
	for _, r := range records {
		if exact(r) {
			return exact
		}
	}

	want := normalizeChain(chain)
	if want == "" {
		return exact
	}
	return func(r yield.Record) bool {
		got := normalizeChain(r.Chain)
		if got == "" {
			return false
		}
		return strings.Contains(got, want) || strings.Contains(want, got)
	}
}
