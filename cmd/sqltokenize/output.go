package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/shibukawa/sqltokenizer/dialects"
	"github.com/shibukawa/sqltokenizer/tokenizer"
)

// jsonToken is the wire shape of one token in --format json output. It
// names its Type by the dialects package's diagnostic string rather than
// the opaque integer, since the integer is only stable within one process.
type jsonToken struct {
	Type     string   `json:"type"`
	Text     string   `json:"text"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Comments []string `json:"comments,omitempty"`
}

// jsonResult is the top-level --format json document. RunID is a fresh
// random UUID per invocation; it appears only in this document.
type jsonResult struct {
	RunID  string      `json:"run_id"`
	Tokens []jsonToken `json:"tokens"`
	Error  string      `json:"error,omitempty"`
}

func writeJSON(w io.Writer, tokens []tokenizer.Token, tokErr error) error {
	result := jsonResult{
		RunID:  uuid.NewString(),
		Tokens: make([]jsonToken, len(tokens)),
	}
	if tokErr != nil {
		result.Error = tokErr.Error()
	}

	for i, tok := range tokens {
		result.Tokens[i] = jsonToken{
			Type:     dialects.TokenName(tok.Type),
			Text:     tok.Text,
			Line:     tok.Line,
			Column:   tok.Column,
			Start:    tok.Start,
			End:      tok.End,
			Comments: tok.Comments,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}

// writeText renders one plain line per token and, on failure, a final error
// line in red, matching the teacher's own diagnostic output (blue for
// informational lines, red for the final error line).
func writeText(w io.Writer, tokens []tokenizer.Token, tokErr error) {
	for _, tok := range tokens {
		line := fmt.Sprintf("%4d:%-3d %-16s %q", tok.Line, tok.Column, dialects.TokenName(tok.Type), tok.Text)
		if len(tok.Comments) > 0 {
			line += fmt.Sprintf("  -- comments: %s", strings.Join(tok.Comments, " | "))
		}

		fmt.Fprintln(w, line)
	}

	if tokErr != nil {
		color.New(color.FgRed).Fprintln(w, tokErr.Error())
	}
}
