// Package cli provides output formatting for the lexica commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/hyperjump/lexica/internal/models"
	"github.com/hyperjump/lexica/pkg/utils"
	"github.com/olekukonko/tablewriter"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is a human-readable table (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a --json flag value onto an OutputFormat.
func ParseOutputFormat(jsonOutput bool) OutputFormat {
	if jsonOutput {
		return OutputJSON
	}
	return OutputText
}

// maxWordWidth bounds the word column of text tables.
const maxWordWidth = 40

// WriteSimilar writes nearest-neighbour results to w in the given format.
func WriteSimilar(w io.Writer, response *models.SimilarResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "Nearest words to %v (%d results in %dms)\n\n", response.Query, len(response.Results), response.QueryTime)
	table := newTable(w, "Rank", "Word", "Similarity")
	for i, r := range response.Results {
		table.Append([]string{
			strconv.Itoa(i + 1),
			utils.Truncate(r.Word, maxWordWidth),
			strconv.FormatFloat(r.Score, 'f', 4, 64),
		})
	}
	table.Render()
	return nil
}

// WriteCommon writes frequency results to w in the given format.
func WriteCommon(w io.Writer, response *models.CommonResponse, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	fmt.Fprintf(w, "Most common in %s (%d results in %dms)\n\n", response.Source, len(response.Results), response.QueryTime)
	table := newTable(w, "Rank", "Token", "Count")
	for i, c := range response.Results {
		table.Append([]string{
			strconv.Itoa(i + 1),
			utils.Truncate(c.Token, maxWordWidth),
			strconv.Itoa(c.Count),
		})
	}
	table.Render()
	return nil
}

// WriteVector writes a vector to w. Text output elides long vectors down to
// maxDims components; zero prints every component.
func WriteVector(w io.Writer, response *models.VectorResponse, format OutputFormat, maxDims int) error {
	if format == OutputJSON {
		return writeJSON(w, response)
	}
	table := newTable(w, "Words", "Dimensions", "Vector")
	table.SetAutoWrapText(false)
	table.Append([]string{
		fmt.Sprint(response.Words),
		strconv.Itoa(response.Dimensions),
		utils.FormatVector(response.Vector, 4, maxDims),
	})
	table.Render()
	return nil
}

// WriteTokens writes tagged tokens to w, one word/tag pair per row.
func WriteTokens(w io.Writer, tokens []models.Token, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, tokens)
	}
	table := newTable(w, "Word", "Tag")
	for _, t := range tokens {
		table.Append([]string{t.Word, t.Tag})
	}
	table.Render()
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
