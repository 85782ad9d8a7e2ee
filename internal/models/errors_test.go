package models

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	t.Run("word", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", &NotFoundError{Word: "kitten"})
		if !errors.Is(err, ErrNotFound) {
			t.Error("wrapped NotFoundError should match ErrNotFound")
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Word != "kitten" {
			t.Errorf("errors.As: got %+v", nf)
		}
		if !strings.Contains(err.Error(), `"kitten"`) {
			t.Errorf("message should name the word: %s", err)
		}
	})

	t.Run("suggestions", func(t *testing.T) {
		err := &NotFoundError{Word: "kiten", Suggestions: []string{"kitten", "kite"}}
		if !strings.Contains(err.Error(), "did you mean kitten, kite?") {
			t.Errorf("got %s", err)
		}
	})

	t.Run("path", func(t *testing.T) {
		err := &NotFoundError{Path: "/no/such/file", Err: fs.ErrNotExist}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Error("path error should unwrap to fs.ErrNotExist")
		}
		if err.Error() != "file not found: /no/such/file" {
			t.Errorf("got %s", err)
		}
	})
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		err  *FormatError
		want string
	}{
		{&FormatError{Source: "vec.txt", Line: 3, Reason: "bad"}, "vec.txt:3: bad"},
		{&FormatError{Line: 7, Reason: "bad"}, "line 7: bad"},
		{&FormatError{Source: "corpus.txt", Token: "dog", Reason: "missing '/'"}, `corpus.txt: missing '/' (token "dog")`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, ErrFormat) {
			t.Errorf("%v should match ErrFormat", tt.err)
		}
	}
}
