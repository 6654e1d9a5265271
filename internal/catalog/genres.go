package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// TMDB genre IDs for movies, keyed by our genre tags
var movieGenreIDs = map[string]int{
	"action":      28,
	"animation":   16,
	"comedy":      35,
	"documentary": 99,
	"drama":       18,
	"horror":      27,
	"romance":     10749,
	"sci-fi":      878,
	"thriller":    53,
}

// TV has fewer genres; some tags fold into a broader one
var tvGenreIDs = map[string]int{
	"action":      10759, // Action & Adventure
	"animation":   16,
	"comedy":      35,
	"documentary": 99,
	"drama":       18,
	"sci-fi":      10765, // Sci-Fi & Fantasy
	"thriller":    9648,  // Mystery
}

// Extra TMDB-only IDs we may see in responses but never ask for
var tmdbOnlyGenres = map[int]string{
	12:    "adventure",
	14:    "fantasy",
	36:    "history",
	37:    "western",
	80:    "crime",
	9648:  "mystery",
	10402: "music",
	10751: "family",
	10752: "war",
	10762: "kids",
	10763: "news",
	10764: "reality",
	10766: "soap",
	10767: "talk",
	10768: "war",
	10770: "tv movie",
}

// GenreTags converts TMDB genre IDs to our lower-case tags.
// Unknown IDs are dropped; duplicates collapse.
func GenreTags(ids []int, series bool) []string {
	table := movieGenreIDs
	if series {
		table = tvGenreIDs
	}

	byID := make(map[int]string, len(table))
	for tag, id := range table {
		byID[id] = tag
	}

	seen := make(map[string]bool)
	tags := make([]string, 0, len(ids))
	for _, id := range ids {
		tag, ok := byID[id]
		if !ok {
			tag, ok = tmdbOnlyGenres[id]
		}
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// genreParam builds a TMDB genre filter. TMDB treats "|" as OR and "," as AND;
// wanted genres use OR so a single overlap is enough.
func genreParam(tags []string, series bool, sep string) string {
	table := movieGenreIDs
	if series {
		table = tvGenreIDs
	}

	seen := make(map[int]bool)
	var ids []int
	for _, tag := range tags {
		id, ok := table[strings.ToLower(tag)]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
