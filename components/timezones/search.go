package timezones

import (
	"cmp"
	"slices"
	"strings"
)

type rank int

const (
	rankExact rank = iota
	rankPrefix
	rankSegment
	rankContains
)

type hit struct {
	zone string
	rank rank
}

// Search returns up to limit zones matching query case-insensitively. Exact
// names come first, then name prefixes, then prefixes of a path segment
// ("york" in America/New_York), then substring matches; ties sort by name.
// An empty query or a limit below one matches nothing.
func Search(zones []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit < 1 {
		return nil
	}

	var hits []hit
	for _, zone := range zones {
		if r, ok := match(strings.ToLower(zone), q); ok {
			hits = append(hits, hit{zone: zone, rank: r})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return strings.Compare(a.zone, b.zone)
	})

	out := make([]string, 0, min(limit, len(hits)))
	for _, h := range hits[:min(limit, len(hits))] {
		out = append(out, h.zone)
	}
	return out
}

func match(zone, q string) (rank, bool) {
	switch {
	case zone == q:
		return rankExact, true
	case strings.HasPrefix(zone, q):
		return rankPrefix, true
	}
	idx := strings.Index(zone, q)
	if idx < 0 {
		return 0, false
	}
	for i := idx; i >= 0; i = indexFrom(zone, q, i+1) {
		if prev := zone[i-1]; prev == '/' || prev == '_' || prev == '-' {
			return rankSegment, true
		}
	}
	return rankContains, true
}

// indexFrom finds q in s at or after start, -1 when absent.
func indexFrom(s, q string, start int) int {
	if start >= len(s) {
		return -1
	}
	i := strings.Index(s[start:], q)
	if i < 0 {
		return -1
	}
	return start + i
}
