package vector

import (
	"gonum.org/v1/gonum/blas/blas32"
)

// InnerProduct returns the inner product of two vectors, or 0 when their
// lengths differ or they are empty.
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return float64(blas32.Dot(vec(a), vec(b)))
}

// L2Norm returns the Euclidean norm of x.
func L2Norm(x []float32) float32 {
	if len(x) == 0 {
		return 0
	}
	return blas32.Nrm2(vec(x))
}

// CosineSimilarity returns the cosine of the angle between a and b, in [-1, 1].
// It returns 0 when the lengths differ, the vectors are empty, or either has
// zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return cosine(InnerProduct(a, b), L2Norm(a), L2Norm(b))
}

func cosine(dot float64, normA, normB float32) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	s := dot / (float64(normA) * float64(normB))
	if s != s { // NaN from non-finite components
		return 0
	}
	return s
}

func vec(x []float32) blas32.Vector {
	return blas32.Vector{N: len(x), Inc: 1, Data: x}
}
