package dialects

import (
	"errors"
	"fmt"

	"github.com/shibukawa/sqltokenizer/tokenizer"
)

// Name identifies a SQL dialect this package knows how to build settings
// for. It is shared across the CLI and test packages the way the teacher's
// root-level Dialect string type is shared across its own packages.
type Name string

const (
	Generic   Name = "generic"
	Postgres  Name = "postgres"
	MySQL     Name = "mysql"
	SQLite    Name = "sqlite"
	Snowflake Name = "snowflake"
	BigQuery  Name = "bigquery"
	Redshift  Name = "redshift"
)

// ErrUnknownDialect is returned by Build for a Name with no registered builder.
var ErrUnknownDialect = errors.New("unknown dialect")

// builder produces a fully populated settings pair for one dialect.
type builder func() (*tokenizer.Settings, tokenizer.DialectSettings)

// Registry indexes every supported dialect's builder. The CLI's "dialects"
// command and the test package both iterate it rather than switching on
// Name by hand, mirroring the teacher's Capabilities map pattern of routing
// dialect-specific behavior through a shared table.
var Registry = map[Name]builder{
	Generic:   buildGeneric,
	Postgres:  buildPostgres,
	MySQL:     buildMySQL,
	SQLite:    buildSQLite,
	Snowflake: buildSnowflake,
	BigQuery:  buildBigQuery,
	Redshift:  buildRedshift,
}

// Names returns every registered dialect name. The CLI's "dialects" command
// uses this; tests use it to run the same smoke test against every dialect.
func Names() []Name {
	names := make([]Name, 0, len(Registry))
	for n := range Registry {
		names = append(names, n)
	}
	return names
}

// Build returns the immutable tokenizer.Settings and per-invocation
// tokenizer.DialectSettings for name. Settings construction and population
// from dialect identity is this package's entire job; the tokenizer core
// never imports it and never branches on name.
func Build(name Name) (*tokenizer.Settings, tokenizer.DialectSettings, error) {
	b, ok := Registry[name]
	if !ok {
		return nil, tokenizer.DialectSettings{}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	settings, dialect := b()
	return settings, dialect, nil
}

// TokenTypes is the single TokenTypeSettings shared by every dialect this
// package builds: the canonical names all resolve to the same concrete
// TokenType values regardless of which dialect emitted them, so a caller
// comparing tokens across dialects never has to special-case identity.
var TokenTypes = tokenizer.TokenTypeSettings{
	Break:                    Break,
	Semicolon:                Semicolon,
	String:                   String,
	Number:                   Number,
	Var:                      Var,
	Identifier:               Identifier,
	Dcolon:                   Dcolon,
	Hint:                     Hint,
	Parameter:                Parameter,
	HexString:                HexString,
	BitString:                BitString,
	RawString:                RawString,
	HeredocString:            HeredocString,
	HeredocStringAlternative: HeredocStringAlternative,
}

// commonKeywords returns the keyword table shared by every ANSI-ish
// dialect this package builds. Per-dialect builders start from a fresh copy
// (maps are reference types; each dialect must own its own mutable table)
// and layer dialect-specific phrases on top.
func commonKeywords() map[string]tokenizer.TokenType {
	return map[string]tokenizer.TokenType{
		"SELECT": Select, "INSERT": Insert, "UPDATE": Update, "DELETE": Delete,
		"FROM": From, "WHERE": Where, "GROUP BY": GroupBy, "ORDER BY": OrderBy,
		"BY": By, "HAVING": Having, "UNION": Union, "UNION ALL": UnionAll,
		"ALL": All, "DISTINCT": Distinct, "AS": As, "WITH": With, "JOIN": Join,
		"LEFT": Left, "RIGHT": Right, "INNER": Inner, "OUTER": Outer, "FULL": Full,
		"CROSS": Cross, "ON": On, "AND": And, "OR": Or, "NOT": Not,
		"NOT NULL": NotNull, "IS NOT": IsNot, "IS": Is, "IN": In, "EXISTS": Exists,
		"BETWEEN": Between, "LIKE": Like, "NULL": Null, "TRUE": True, "FALSE": False,
		"CASE": Case, "WHEN": When, "THEN": Then, "ELSE": Else, "END": End,
		"CAST": Cast, "LIMIT": Limit, "OFFSET": Offset, "INTO": Into,
		"VALUES": Values, "SET": Set, "CREATE": Create, "TABLE": Table,
		"DROP": Drop, "ALTER": Alter, "VIEW": View, "INDEX": Index,
		"BEGIN": Begin, "COMMIT": Commit, "ROLLBACK": Rollback,
		"EXECUTE": Execute, "EXPLAIN": Explain, "OVER": Over,
		"PARTITION": Partition, "ASC": Asc, "DESC": Desc,
		"::": Dcolon, "<>": Neq, "!=": Neq, "<=": Leq, ">=": Geq,
	}
}

// commonSingleTokens includes the quote characters ' and " mapped to
// Unknown, never emitted as a token's own type, purely so keys built from
// them (plain quotes, and format-string prefixes like X' or R") satisfy
// tokenizer.New's trie-membership filter and actually reach the trie.
func commonSingleTokens() map[rune]tokenizer.TokenType {
	return map[rune]tokenizer.TokenType{
		'(': LParen, ')': RParen, ',': Comma, ';': Semicolon, '.': Dot,
		':': Colon, '!': Bang, '=': Eq, '<': Lt, '>': Gt, '+': Plus,
		'-': Minus, '*': Star, '/': Slash, '%': Percent, '|': Pipe,
		'&': Amp, '^': Caret, '~': Tilde, '@': At, '?': Question,
		'\'': Unknown, '"': Unknown, '$': Dollar,
	}
}

func commonWhiteSpace() map[rune]tokenizer.TokenType {
	return map[rune]tokenizer.TokenType{'\n': Break, '\r': Break}
}

func commonComments() map[string]string {
	return map[string]string{
		"--":  "",
		"/*":  "*/",
		"/*+": "*/",
	}
}

// base returns the settings skeleton every builder starts from: common
// keywords, punctuation, whitespace, comments, and the command-swallow /
// hint-promotion tables that don't vary by dialect.
func base() *tokenizer.Settings {
	return &tokenizer.Settings{
		Keywords:            commonKeywords(),
		WhiteSpace:          commonWhiteSpace(),
		SingleTokens:        commonSingleTokens(),
		Identifiers:         map[rune]rune{'"': '"'},
		IdentifierEscapes:   map[rune]struct{}{'"': {}},
		StringEscapes:       map[rune]struct{}{'\'': {}},
		Quotes:              map[string]string{"'": "'"},
		FormatStrings:       map[string]tokenizer.FormatString{},
		Comments:            commonComments(),
		Commands:            map[tokenizer.TokenType]struct{}{Execute: {}},
		CommandPrefixTokens: map[tokenizer.TokenType]struct{}{Semicolon: {}},
		TokensPrecedingHint: map[tokenizer.TokenType]struct{}{Select: {}, Insert: {}, Update: {}, Delete: {}},
		HintStart:           "/*+",
		VarSingleTokens:     map[rune]struct{}{},
		NumericLiterals:     map[string]string{},
	}
}

func buildGeneric() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.HasHexStrings = true
	s.FormatStrings["X'"] = tokenizer.FormatString{End: "'", Type: HexString}
	s.NumericLiterals["L"] = "INT64"
	s.NumericLiterals["BD"] = "BIGDECIMAL"
	s.NumericLiterals["F"] = "FLOAT64"
	s.Keywords["INT64"] = Int64Literal
	s.Keywords["BIGDECIMAL"] = BigDecimalLiteral
	s.Keywords["FLOAT64"] = Float64Literal

	return s, tokenizer.DialectSettings{
		IdentifiersCanStartWithDigit: true,
	}
}

func buildPostgres() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.HasBitStrings = true
	s.NestedComments = true
	s.HeredocTagIsIdentifier = true
	s.FormatStrings["B'"] = tokenizer.FormatString{End: "'", Type: BitString}
	s.FormatStrings["$"] = tokenizer.FormatString{End: "$", Type: HeredocString}
	s.VarSingleTokens['$'] = struct{}{}

	return s, tokenizer.DialectSettings{
		NumbersCanBeUnderscoreSeparated: true,
	}
}

func buildMySQL() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.HasBitStrings = true
	s.HasHexStrings = true
	delete(s.Identifiers, '"')
	delete(s.IdentifierEscapes, '"')
	s.Identifiers['`'] = '`'
	s.IdentifierEscapes['`'] = struct{}{}
	s.Quotes[`"`] = `"`
	s.Comments["#"] = ""
	s.SingleTokens['#'] = Unknown
	s.FormatStrings["X'"] = tokenizer.FormatString{End: "'", Type: HexString}
	s.FormatStrings["B'"] = tokenizer.FormatString{End: "'", Type: BitString}
	s.StringEscapes['\\'] = struct{}{}

	return s, tokenizer.DialectSettings{
		UnescapedSequences: map[string]string{
			`\n`: "\n", `\t`: "\t", `\r`: "\r", `\0`: "\x00", `\\`: `\`,
		},
		NumbersCanBeUnderscoreSeparated: true,
	}
}

func buildSQLite() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.Identifiers['`'] = '`'
	s.IdentifierEscapes['`'] = struct{}{}

	return s, tokenizer.DialectSettings{}
}

func buildSnowflake() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.NestedComments = true
	s.HeredocTagIsIdentifier = true
	s.FormatStrings["$"] = tokenizer.FormatString{End: "$", Type: HeredocString}
	s.VarSingleTokens['$'] = struct{}{}

	return s, tokenizer.DialectSettings{
		NumbersCanBeUnderscoreSeparated: true,
	}
}

func buildBigQuery() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.HasHexStrings = true
	s.FormatStrings["X'"] = tokenizer.FormatString{End: "'", Type: HexString}
	s.FormatStrings["R'"] = tokenizer.FormatString{End: "'", Type: RawString}
	s.FormatStrings[`R"`] = tokenizer.FormatString{End: `"`, Type: RawString}
	s.NumericLiterals["L"] = "INT64"
	s.NumericLiterals["F"] = "FLOAT64"
	s.Keywords["INT64"] = Int64Literal
	s.Keywords["FLOAT64"] = Float64Literal

	return s, tokenizer.DialectSettings{
		NumbersCanBeUnderscoreSeparated: true,
	}
}

func buildRedshift() (*tokenizer.Settings, tokenizer.DialectSettings) {
	s := base()
	s.HasBitStrings = true
	s.FormatStrings["B'"] = tokenizer.FormatString{End: "'", Type: BitString}

	return s, tokenizer.DialectSettings{}
}
