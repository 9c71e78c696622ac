package dialects_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/sqltokenizer/dialects"
	"github.com/shibukawa/sqltokenizer/tokenizer"
)

func tokenize(t *testing.T, name dialects.Name, sql string) []tokenizer.Token {
	t.Helper()
	settings, dialectSettings, err := dialects.Build(name)
	assert.NoError(t, err)
	tok := tokenizer.New(settings, dialects.TokenTypes)
	tokens, err := tok.Tokenize(sql, dialectSettings)
	assert.NoError(t, err)
	return tokens
}

func TestBuildUnknownDialect(t *testing.T) {
	_, _, err := dialects.Build("nonsense")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dialects.ErrUnknownDialect))
}

func TestEveryRegisteredDialectTokenizesCommonQuery(t *testing.T) {
	for _, name := range dialects.Names() {
		name := name
		t.Run(string(name), func(t *testing.T) {
			tokens := tokenize(t, name, "SELECT id, name FROM users WHERE id = 1 AND active = TRUE;")
			assert.True(t, len(tokens) > 0)
			assert.Equal(t, dialects.Select, tokens[0].Type)
			last := tokens[len(tokens)-1]
			assert.Equal(t, dialects.Semicolon, last.Type)
		})
	}
}

func TestGenericTypedNumericLiterals(t *testing.T) {
	tokens := tokenize(t, dialects.Generic, "SELECT 42L, 3.14F")
	assert.Equal(t, dialects.Select, tokens[0].Type)
	assert.Equal(t, dialects.Number, tokens[1].Type)
	assert.Equal(t, dialects.Dcolon, tokens[2].Type)
	assert.Equal(t, dialects.Int64Literal, tokens[3].Type)
	assert.Equal(t, dialects.Number, tokens[5].Type)
	assert.Equal(t, dialects.Dcolon, tokens[6].Type)
	assert.Equal(t, dialects.Float64Literal, tokens[7].Type)
}

func TestPostgresHeredocAndUnderscoreNumbers(t *testing.T) {
	tokens := tokenize(t, dialects.Postgres, "SELECT $$hello world$$, 1_000_000")
	assert.Equal(t, dialects.Select, tokens[0].Type)
	assert.Equal(t, dialects.HeredocString, tokens[1].Type)
	assert.Equal(t, "$$hello world$$", tokens[1].Text)
	assert.Equal(t, dialects.Number, tokens[3].Type)
	assert.Equal(t, "1000000", tokens[3].Text)
}

func TestMySQLBacktickIdentifierAndHexString(t *testing.T) {
	tokens := tokenize(t, dialects.MySQL, "SELECT `my col` FROM t WHERE x = X'1F'")
	assert.Equal(t, dialects.Select, tokens[0].Type)
	assert.Equal(t, dialects.Identifier, tokens[1].Type)
	assert.Equal(t, "my col", tokens[1].Text)
	last := tokens[len(tokens)-1]
	assert.Equal(t, dialects.HexString, last.Type)
	assert.Equal(t, "1F", last.Text)
}

func TestMySQLHashComment(t *testing.T) {
	tokens := tokenize(t, dialects.MySQL, "SELECT 1 # trailing comment\nFROM t")
	assert.Equal(t, []tokenizer.TokenType{dialects.Select, dialects.Number, dialects.From, dialects.Var}, tokenTypesOf(tokens))
	assert.Equal(t, []string{" trailing comment"}, tokens[1].Comments)
}

func TestBigQueryRawString(t *testing.T) {
	tokens := tokenize(t, dialects.BigQuery, `SELECT R"\d+"`)
	assert.Equal(t, dialects.Select, tokens[0].Type)
	assert.Equal(t, dialects.RawString, tokens[1].Type)
}

func TestSnowflakeNestedComment(t *testing.T) {
	tokens := tokenize(t, dialects.Snowflake, "SELECT /* a /* b */ c */ 1")
	assert.Equal(t, []tokenizer.TokenType{dialects.Select, dialects.Number}, tokenTypesOf(tokens))
	assert.Equal(t, []string{" a /* b */ c "}, tokens[0].Comments)
}

func TestTokenNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "SELECT", dialects.TokenName(dialects.Select))
	assert.Equal(t, "UNKNOWN", dialects.TokenName(tokenizer.TokenType(999999)))
}

func tokenTypesOf(tokens []tokenizer.Token) []tokenizer.TokenType {
	out := make([]tokenizer.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}
