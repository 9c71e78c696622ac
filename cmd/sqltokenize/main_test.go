package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/sqltokenizer/dialects"
	"github.com/shibukawa/sqltokenizer/tokenizer"
)

func TestTokenizeCmdRunTextFormat(t *testing.T) {
	tempDir := t.TempDir()
	sqlPath := filepath.Join(tempDir, "query.sql")
	assert.NoError(t, os.WriteFile(sqlPath, []byte("SELECT 1"), 0o644))

	cmd := &TokenizeCmd{Path: sqlPath, Dialect: "generic", Format: "text"}
	assert.NoError(t, cmd.Run(&Context{}))
}

func TestTokenizeCmdUnknownFormat(t *testing.T) {
	tempDir := t.TempDir()
	sqlPath := filepath.Join(tempDir, "query.sql")
	assert.NoError(t, os.WriteFile(sqlPath, []byte("SELECT 1"), 0o644))

	cmd := &TokenizeCmd{Path: sqlPath, Dialect: "generic", Format: "yaml"}
	err := cmd.Run(&Context{})
	assert.Error(t, err)
}

func TestLoadSettingsOverrideAddsKeyword(t *testing.T) {
	tempDir := t.TempDir()
	overridePath := filepath.Join(tempDir, "override.yaml")
	doc := "keywords:\n  PRAGMA: VAR\ncomments:\n  \"//\": \"\"\n"
	assert.NoError(t, os.WriteFile(overridePath, []byte(doc), 0o644))

	override, err := loadSettingsOverride(overridePath)
	assert.NoError(t, err)
	assert.Equal(t, "VAR", override.Keywords["PRAGMA"])
	assert.Equal(t, "", override.Comments["//"])

	settings, _, err := dialects.Build(dialects.Generic)
	assert.NoError(t, err)
	assert.NoError(t, override.apply(settings))

	_, ok := settings.Comments["//"]
	assert.True(t, ok)
}

func TestLoadSettingsOverrideUnknownTokenType(t *testing.T) {
	tempDir := t.TempDir()
	overridePath := filepath.Join(tempDir, "override.yaml")
	doc := "keywords:\n  PRAGMA: NOT_A_REAL_TYPE\n"
	assert.NoError(t, os.WriteFile(overridePath, []byte(doc), 0o644))

	override, err := loadSettingsOverride(overridePath)
	assert.NoError(t, err)

	settings, _, err := dialects.Build(dialects.Generic)
	assert.NoError(t, err)

	err = override.apply(settings)
	assert.Error(t, err)
}

func TestWriteJSONIncludesRunID(t *testing.T) {
	settings, dialectSettings, err := dialects.Build(dialects.Generic)
	assert.NoError(t, err)

	tok := tokenizer.New(settings, dialects.TokenTypes)
	tokens, tokErr := tok.Tokenize("SELECT 1", dialectSettings)
	assert.NoError(t, tokErr)

	var buf bytes.Buffer
	assert.NoError(t, writeJSON(&buf, tokens, nil))
	assert.Contains(t, buf.String(), `"run_id"`)
	assert.Contains(t, buf.String(), `"SELECT"`)
}

func TestDialectsCmdRun(t *testing.T) {
	cmd := &DialectsCmd{}
	assert.NoError(t, cmd.Run(&Context{}))
}
