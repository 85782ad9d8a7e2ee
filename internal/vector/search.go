package vector

import (
	"fmt"
	"sort"

	"github.com/hyperjump/lexica/internal/models"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// MostSimilar returns the n words most similar to word by cosine similarity,
// never including word itself. The result has min(n, Size()-1) entries,
// sorted by score descending and then by word ascending.
func (t *Table) MostSimilar(word string, n int) ([]models.WordScore, error) {
	i, ok := t.index[word]
	if !ok {
		return nil, &models.NotFoundError{Word: word}
	}
	if n <= 0 {
		return []models.WordScore{}, nil
	}
	scores := t.scores(t.row(i))
	return t.rank(scores, n, func(j int) bool { return j == i }), nil
}

// MostSimilarToVector returns the n stored words most similar to query. No
// word is excluded since query need not belong to the table.
func (t *Table) MostSimilarToVector(query []float32, n int) ([]models.WordScore, error) {
	if len(query) != t.dimensions {
		return nil, &models.FormatError{Reason: fmt.Sprintf("query dimension mismatch: got %d, expected %d", len(query), t.dimensions)}
	}
	if n <= 0 {
		return []models.WordScore{}, nil
	}
	return t.rank(t.scores(query), n, nil), nil
}

// MostSimilarToWords ranks the table against the average vector of words and
// returns the n best entries that are not themselves in words.
func (t *Table) MostSimilarToWords(words []string, n int) ([]models.WordScore, error) {
	avg, err := t.AverageVector(words)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []models.WordScore{}, nil
	}
	exclude := make(map[int]struct{}, len(words))
	for _, w := range words {
		exclude[t.index[w]] = struct{}{}
	}
	return t.rank(t.scores(avg), n, func(j int) bool {
		_, skip := exclude[j]
		return skip
	}), nil
}

// scores returns the cosine similarity of query against every row. All dot
// products come from a single matrix-vector product over the row-major data.
func (t *Table) scores(query []float32) []float64 {
	rows := len(t.words)
	if rows == 0 {
		return nil
	}
	dots := make([]float32, rows)
	blas32.Gemv(
		blas.NoTrans, 1.0,
		blas32.General{Rows: rows, Cols: t.dimensions, Stride: t.dimensions, Data: t.data},
		vec(query), 0.0,
		blas32.Vector{N: rows, Inc: 1, Data: dots},
	)
	qn := L2Norm(query)
	out := make([]float64, rows)
	for i, d := range dots {
		out[i] = cosine(float64(d), qn, t.norms[i])
	}
	return out
}

func (t *Table) rank(scores []float64, n int, skip func(i int) bool) []models.WordScore {
	candidates := make([]int, 0, len(scores))
	for i := range scores {
		if skip != nil && skip(i) {
			continue
		}
		candidates = append(candidates, i)
	}
	sort.Slice(candidates, func(a, b int) bool {
		sa, sb := scores[candidates[a]], scores[candidates[b]]
		if sa != sb {
			return sa > sb
		}
		return t.words[candidates[a]] < t.words[candidates[b]]
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]models.WordScore, n)
	for k := 0; k < n; k++ {
		i := candidates[k]
		out[k] = models.WordScore{Word: t.words[i], Score: scores[i]}
	}
	return out
}
