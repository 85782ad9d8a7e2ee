// Package e2e provides end-to-end tests over a generated vector table and
// tagged corpus served through the HTTP API.
package e2e

import (
	"fmt"
	"strconv"
	"strings"
)

// Cluster is a group of words whose vectors point in nearly the same
// direction and away from every other cluster.
type Cluster struct {
	Name  string
	Words []string
}

// Dataset holds the generated files and the facts tests assert against.
type Dataset struct {
	Dimensions int
	Clusters   []Cluster
	Vectors    string // vector file contents
	Corpus     string // word/tag corpus contents
	Sentences  int
}

// BuildDataset returns clusters*perCluster words in dims dimensions, plus a
// corpus with one "the/at <word>/nn runs/vbz" sentence per word.
// clusters must not exceed dims.
func BuildDataset(clusters, perCluster, dims int) *Dataset {
	if clusters > dims {
		panic("e2e: more clusters than dimensions")
	}
	d := &Dataset{Dimensions: dims}
	var vectors, corpus strings.Builder
	for c := 0; c < clusters; c++ {
		cluster := Cluster{Name: fmt.Sprintf("topic%d", c)}
		for j := 0; j < perCluster; j++ {
			word := fmt.Sprintf("%s_w%d", cluster.Name, j)
			cluster.Words = append(cluster.Words, word)

			vec := make([]float64, dims)
			vec[c] = 1
			vec[(c+1)%dims] = 0.1 * float64(j+1) / float64(perCluster)
			vectors.WriteString(word)
			for _, x := range vec {
				vectors.WriteByte(' ')
				vectors.WriteString(strconv.FormatFloat(x, 'f', 6, 64))
			}
			vectors.WriteByte('\n')

			fmt.Fprintf(&corpus, "the/at %s/nn runs/vbz\n", word)
			d.Sentences++
		}
		d.Clusters = append(d.Clusters, cluster)
	}
	d.Vectors = vectors.String()
	d.Corpus = corpus.String()
	return d
}

// ClusterOf returns the name of the cluster containing word, or "".
func (d *Dataset) ClusterOf(word string) string {
	for _, c := range d.Clusters {
		for _, w := range c.Words {
			if w == word {
				return c.Name
			}
		}
	}
	return ""
}

// Words returns every generated word in generation order.
func (d *Dataset) Words() []string {
	var out []string
	for _, c := range d.Clusters {
		out = append(out, c.Words...)
	}
	return out
}
