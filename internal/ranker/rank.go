package ranker

import (
	"sort"
	"sync"

	"github.com/vijay-prabhu/moodmatch/internal/catalog"
	"github.com/vijay-prabhu/moodmatch/internal/intent"
)

// Ranker scores candidates with a bounded number of goroutines
type Ranker struct {
	Workers int // <= 1 scores sequentially
}

// Rank scores candidates sequentially and orders them by descending score
func Rank(in intent.Intent, movies []catalog.Movie) []Recommendation {
	return Ranker{}.Rank(in, movies)
}

// Rank scores every candidate and stable-sorts by descending score.
// Candidates with equal scores keep their input order.
func (r Ranker) Rank(in intent.Intent, movies []catalog.Movie) []Recommendation {
	recs := make([]Recommendation, len(movies))

	if r.Workers <= 1 || len(movies) < 2 {
		for i, m := range movies {
			recs[i] = Score(in, m)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, r.Workers)

		for i, m := range movies {
			wg.Add(1)
			sem <- struct{}{}
			go func(index int, movie catalog.Movie) {
				defer wg.Done()
				defer func() { <-sem }()
				recs[index] = Score(in, movie)
			}(i, m)
		}

		wg.Wait()
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	return recs
}

// Top returns the first n recommendations; n <= 0 returns all
func Top(recs []Recommendation, n int) []Recommendation {
	if n <= 0 || n >= len(recs) {
		return recs
	}
	return recs[:n]
}
