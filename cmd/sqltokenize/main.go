// Command sqltokenize runs the dialect-parameterized SQL tokenizer over a
// file or stdin and prints the resulting token stream.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/shibukawa/sqltokenizer/dialects"
	"github.com/shibukawa/sqltokenizer/tokenizer"
)

// Context carries global flags into every command's Run method.
type Context struct {
	Verbose bool
}

// TokenizeCmd tokenizes one SQL source and prints its token stream.
type TokenizeCmd struct {
	Path     string `arg:"" optional:"" name:"path" help:"SQL file to tokenize ('-' or omitted reads stdin)"`
	Dialect  string `help:"Dialect to tokenize with" default:"generic" enum:"generic,postgres,mysql,sqlite,snowflake,bigquery,redshift"`
	Settings string `help:"YAML file with keyword/comment/quote overrides merged onto the dialect" short:"s"`
	Format   string `help:"Output format" default:"text" enum:"text,json"`
}

// Run executes the tokenize command.
func (cmd *TokenizeCmd) Run(ctx *Context) error {
	sql, err := cmd.readSQL()
	if err != nil {
		return err
	}

	settings, dialectSettings, err := dialects.Build(dialects.Name(cmd.Dialect))
	if err != nil {
		return err
	}

	if cmd.Settings != "" {
		override, err := loadSettingsOverride(cmd.Settings)
		if err != nil {
			return err
		}

		if err := override.apply(settings); err != nil {
			return err
		}

		if ctx.Verbose {
			color.Blue("Merged settings override from %s", cmd.Settings)
		}
	}

	if ctx.Verbose {
		color.Blue("Tokenizing with dialect %q", cmd.Dialect)
	}

	tok := tokenizer.New(settings, dialects.TokenTypes)
	tokens, tokErr := tok.Tokenize(sql, dialectSettings)

	switch cmd.Format {
	case "json":
		if err := writeJSON(os.Stdout, tokens, tokErr); err != nil {
			return fmt.Errorf("failed to write json output: %w", err)
		}
	case "text", "":
		writeText(os.Stdout, tokens, tokErr)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutputFormat, cmd.Format)
	}

	if tokErr != nil {
		os.Exit(1)
	}

	return nil
}

func (cmd *TokenizeCmd) readSQL() (string, error) {
	if cmd.Path == "" || cmd.Path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read SQL from stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read SQL file %s: %w", cmd.Path, err)
	}

	return string(data), nil
}

// DialectsCmd lists every dialect this build's Registry knows how to build
// settings for.
type DialectsCmd struct{}

// Run executes the dialects command.
func (cmd *DialectsCmd) Run(ctx *Context) error {
	names := dialects.Names()
	sorted := make([]string, len(names))

	for i, n := range names {
		sorted[i] = string(n)
	}

	sort.Strings(sorted)

	for _, n := range sorted {
		fmt.Println(n)
	}

	return nil
}

// CLI is the top-level command tree parsed by kong.
var CLI struct {
	Verbose  bool        `help:"Enable verbose diagnostic output" short:"v"`
	Tokenize TokenizeCmd `cmd:"" help:"Tokenize a SQL file or stdin"`
	Dialects DialectsCmd `cmd:"" help:"List supported dialects"`
}

func main() {
	loadEnvFile()

	kongCtx := kong.Parse(&CLI,
		kong.Name("sqltokenize"),
		kong.Description("Dialect-parameterized SQL tokenizer"),
	)

	appCtx := &Context{Verbose: CLI.Verbose}

	if err := kongCtx.Run(appCtx); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadEnvFile loads a .env file from the current directory if present, the
// way the teacher's own CLI entrypoint seeds process environment variables
// before parsing flags.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
