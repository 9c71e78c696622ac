package tokenizer

// TokenType is an opaque tag drawn from a fixed enumeration populated by a
// dialect's Settings. The tokenizer core never branches on a concrete
// TokenType value beyond the canonical ones named in TokenTypeSettings; it
// only compares for equality.
type TokenType int

// Token is the value object produced by a tokenize call. Start and End are
// inclusive code-point (rune) indices into the original input. Line and
// Column describe the position of the token's last character.
type Token struct {
	Type     TokenType
	Text     string
	Line     int
	Column   int
	Start    int
	End      int
	Comments []string
}

func newToken(tokenType TokenType, text string, line, column, start, end int, comments []string) Token {
	return Token{
		Type:     tokenType,
		Text:     text,
		Line:     line,
		Column:   column,
		Start:    start,
		End:      end,
		Comments: comments,
	}
}

// appendComments moves every pending comment in *src onto t, draining src in
// the process. The draining matters: callers rely on the source slice being
// empty afterward so a later flush doesn't double-attach the same comments.
func (t *Token) appendComments(src *[]string) {
	if len(*src) == 0 {
		return
	}
	t.Comments = append(t.Comments, (*src)...)
	*src = nil
}
