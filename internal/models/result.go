package models

// WordScore is a single similarity hit.
type WordScore struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"` // cosine similarity in [-1, 1]
}

// SimilarResponse is the response for a similarity request.
type SimilarResponse struct {
	Query     []string    `json:"query"`
	Results   []WordScore `json:"results"`
	QueryTime int64       `json:"query_time_ms"`
	// Cached reports that the results were served from the result cache.
	Cached bool `json:"cached,omitempty"`
}

// VectorResponse carries a stored or composed embedding vector.
type VectorResponse struct {
	Words      []string  `json:"words"`
	Vector     []float32 `json:"vector"`
	Dimensions int       `json:"dimensions"`
}

// CommonResponse is the response for a frequency request.
type CommonResponse struct {
	Source    string       `json:"source"`
	Results   []TokenCount `json:"results"`
	QueryTime int64        `json:"query_time_ms"`
}
