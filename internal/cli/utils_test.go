package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/lexica/internal/models"
)

func TestWriteSimilar_JSON(t *testing.T) {
	response := &models.SimilarResponse{
		Query:     []string{"king"},
		QueryTime: 3,
		Results: []models.WordScore{
			{Word: "queen", Score: 0.91},
			{Word: "prince", Score: 0.87},
		},
	}
	var buf bytes.Buffer
	if err := WriteSimilar(&buf, response, OutputJSON); err != nil {
		t.Fatalf("WriteSimilar(json): %v", err)
	}
	var decoded models.SimilarResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Results) != 2 || decoded.Results[0].Word != "queen" {
		t.Errorf("decoded results = %+v", decoded.Results)
	}
}

func TestWriteSimilar_Text(t *testing.T) {
	response := &models.SimilarResponse{
		Query:   []string{"king"},
		Results: []models.WordScore{{Word: "queen", Score: 0.91234}},
	}
	var buf bytes.Buffer
	if err := WriteSimilar(&buf, response, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"king", "queen", "0.9123", "SIMILARITY"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCommon_Text(t *testing.T) {
	response := &models.CommonResponse{
		Source:  "brown.txt",
		Results: []models.TokenCount{{Token: "the/at", Count: 6}, {Token: "of/in", Count: 3}},
	}
	var buf bytes.Buffer
	if err := WriteCommon(&buf, response, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "brown.txt") || !strings.Contains(out, "the/at") || !strings.Contains(out, "6") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Index(out, "the/at") > strings.Index(out, "of/in") {
		t.Error("rows should keep result order")
	}
}

func TestWriteVector(t *testing.T) {
	response := &models.VectorResponse{
		Words:      []string{"a"},
		Vector:     []float32{1, 2, 3, 4, 5, 6},
		Dimensions: 6,
	}
	var buf bytes.Buffer
	if err := WriteVector(&buf, response, OutputText, 4); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[1.0000 2.0000 ... 5.0000 6.0000]") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	if err := WriteVector(&buf, response, OutputJSON, 4); err != nil {
		t.Fatal(err)
	}
	var decoded models.VectorResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Vector) != 6 {
		t.Error("JSON output must not elide components")
	}
}

func TestWriteTokens(t *testing.T) {
	var buf bytes.Buffer
	tokens := []models.Token{{Word: "dogs", Tag: "nns"}, {Word: "bark", Tag: "vbp"}}
	if err := WriteTokens(&buf, tokens, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "dogs") || !strings.Contains(buf.String(), "vbp") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestParseOutputFormat(t *testing.T) {
	if ParseOutputFormat(true) != OutputJSON {
		t.Error("true should select JSON")
	}
	if ParseOutputFormat(false) != OutputText {
		t.Error("false should select text")
	}
}
