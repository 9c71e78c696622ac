// Package dialects builds concrete tokenizer.Settings/DialectSettings pairs
// for real SQL dialects. It is the external collaborator the tokenizer core
// deliberately has no knowledge of: tokenizer.TokenType is an opaque int
// there, and every concrete value it stands for is assigned here.
package dialects

import (
	"strings"

	"github.com/shibukawa/sqltokenizer/tokenizer"
)

// Token type constants. These are the concrete values behind the opaque
// tokenizer.TokenType the core package only ever compares for equality.
const (
	Break tokenizer.TokenType = iota
	Semicolon
	Comma
	LParen
	RParen
	Dot
	Colon
	Dcolon
	Bang
	Eq
	Neq
	Lt
	Gt
	Leq
	Geq
	Plus
	Minus
	Star
	Slash
	Percent
	Pipe
	Amp
	Caret
	Tilde
	At
	Dollar
	Question

	// Unknown is never emitted as a token's Type. It exists only so quote
	// and format-string prefix characters (', ") and MySQL's # comment
	// start can sit in SingleTokens: that is what makes the trie-membership
	// filter in tokenizer.New pick up keys built from them (e.g. MySQL's X'
	// and #).
	Unknown

	String
	Number
	Var
	Identifier
	Hint
	Parameter
	HexString
	BitString
	RawString
	HeredocString
	HeredocStringAlternative

	Int64Literal
	BigDecimalLiteral
	Float64Literal

	Select
	Insert
	Update
	Delete
	From
	Where
	GroupBy
	OrderBy
	By
	Having
	Union
	UnionAll
	All
	Distinct
	As
	With
	Join
	Left
	Right
	Inner
	Outer
	Full
	Cross
	On
	And
	Or
	Not
	NotNull
	IsNot
	Is
	In
	Exists
	Between
	Like
	Null
	True
	False
	Case
	When
	Then
	Else
	End
	Cast
	Limit
	Offset
	Into
	Values
	Set
	Create
	Table
	Drop
	Alter
	View
	Index
	Begin
	Commit
	Rollback
	Execute
	Explain
	Over
	Partition
	Asc
	Desc
)

// tokenNames backs TokenName, the debug/diagnostic string for a token type. It
// exists here, not as a method on tokenizer.TokenType, because that type's
// contract (spec: "equality and hashing only") stays opaque in the core
// package; naming concrete values is this package's job.
var tokenNames = map[tokenizer.TokenType]string{
	Break: "BREAK", Semicolon: "SEMICOLON", Comma: "COMMA", LParen: "LPAREN",
	RParen: "RPAREN", Dot: "DOT", Colon: "COLON", Dcolon: "DCOLON", Bang: "BANG",
	Eq: "EQ", Neq: "NEQ", Lt: "LT", Gt: "GT", Leq: "LEQ", Geq: "GEQ",
	Plus: "PLUS", Minus: "MINUS", Star: "STAR", Slash: "SLASH", Percent: "PERCENT",
	Pipe: "PIPE", Amp: "AMP", Caret: "CARET", Tilde: "TILDE", At: "AT",
	Dollar: "DOLLAR", Question: "QUESTION", Unknown: "UNKNOWN",
	String: "STRING", Number: "NUMBER", Var: "VAR", Identifier: "IDENTIFIER",
	Hint: "HINT", Parameter: "PARAMETER", HexString: "HEX_STRING",
	BitString: "BIT_STRING", RawString: "RAW_STRING", HeredocString: "HEREDOC_STRING",
	HeredocStringAlternative: "HEREDOC_STRING_ALTERNATIVE",
	Int64Literal:             "INT64", BigDecimalLiteral: "BIGDECIMAL", Float64Literal: "FLOAT64",
	Select: "SELECT", Insert: "INSERT", Update: "UPDATE", Delete: "DELETE",
	From: "FROM", Where: "WHERE", GroupBy: "GROUP BY", OrderBy: "ORDER BY", By: "BY",
	Having: "HAVING", Union: "UNION", UnionAll: "UNION ALL", All: "ALL",
	Distinct: "DISTINCT", As: "AS", With: "WITH", Join: "JOIN", Left: "LEFT",
	Right: "RIGHT", Inner: "INNER", Outer: "OUTER", Full: "FULL", Cross: "CROSS",
	On: "ON", And: "AND", Or: "OR", Not: "NOT", NotNull: "NOT NULL", IsNot: "IS NOT",
	Is: "IS", In: "IN", Exists: "EXISTS", Between: "BETWEEN", Like: "LIKE",
	Null: "NULL", True: "TRUE", False: "FALSE", Case: "CASE", When: "WHEN",
	Then: "THEN", Else: "ELSE", End: "END", Cast: "CAST", Limit: "LIMIT",
	Offset: "OFFSET", Into: "INTO", Values: "VALUES", Set: "SET", Create: "CREATE",
	Table: "TABLE", Drop: "DROP", Alter: "ALTER", View: "VIEW", Index: "INDEX",
	Begin: "BEGIN", Commit: "COMMIT", Rollback: "ROLLBACK", Execute: "EXECUTE",
	Explain: "EXPLAIN", Over: "OVER", Partition: "PARTITION", Asc: "ASC", Desc: "DESC",
}

// TokenName returns the diagnostic name for tt, or "UNKNOWN" if tt was not
// assigned one of this package's constants.
func TokenName(tt tokenizer.TokenType) string {
	if n, ok := tokenNames[tt]; ok {
		return n
	}
	return "UNKNOWN"
}

// namesToTokens is the reverse of tokenNames, built once. It lets a settings
// override given as text (e.g. from a YAML file) name an existing TokenType
// without the override format having to know concrete integer values.
var namesToTokens = func() map[string]tokenizer.TokenType {
	m := make(map[string]tokenizer.TokenType, len(tokenNames))
	for tt, name := range tokenNames {
		m[name] = tt
	}
	return m
}()

// TokenTypeByName resolves a diagnostic name (case-insensitive, e.g. "var"
// or "GROUP BY") back to the TokenType it names.
func TokenTypeByName(name string) (tokenizer.TokenType, bool) {
	tt, ok := namesToTokens[strings.ToUpper(strings.TrimSpace(name))]
	return tt, ok
}
