package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxSearchResults caps the limit accepted by Search.
const MaxSearchResults = 20

// Search returns cities whose name or state contains query, best match
// first. City-name matches outrank state matches and a name prefix earns a
// bonus. Queries shorter than two characters match nothing.
func (c *Catalog) Search(query string, limit int) []Location {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < 2 {
		return nil
	}
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	type scored struct {
		score float64
		loc   Location
	}
	var results []scored
	for _, loc := range c.all {
		name := strings.ToLower(loc.Name)
		state := strings.ToLower(loc.State)
		switch {
		case strings.Contains(name, q):
			score := similarity(q, name)
			if strings.HasPrefix(name, q) {
				score += 0.5
			}
			results = append(results, scored{score, loc})
		case strings.Contains(state, q):
			results = append(results, scored{similarity(q, state) * 0.5, loc})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]Location, 0, len(results))
	for _, r := range results {
		out = append(out, r.loc)
	}
	return out
}

// similarity is the Ratcliff/Obershelp ratio 2*M/T, where M counts the
// characters in recursively matched longest common blocks.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matching(ra, rb)) / float64(total)
}

func matching(a, b []rune) int {
	i, j, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matching(a[:i], b[:j]) + matching(a[i+size:], b[j+size:])
}

func longestBlock(a, b []rune) (int, int, int) {
	var bestI, bestJ, best int
	prev := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		cur := make([]int, len(b)+1)
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > best {
					best, bestI, bestJ = cur[j], i-cur[j], j-cur[j]
				}
			}
		}
		prev = cur
	}
	return bestI, bestJ, best
}
