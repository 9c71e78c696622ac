package tokenizer

import (
	"strings"
	"unicode"
)

// state is the mutable, per-invocation scanner. It borrows the trie and
// settings from a Tokenizer and owns the input's decoded rune buffer plus
// every cursor the dispatch loop and sub-scanners advance. It never escapes
// a single Tokenize call.
type state struct {
	sql    []rune
	size   int
	tokens []Token

	start, current int
	line, column   int

	comments []string

	isEnd       bool
	currentChar rune
	peekChar    rune

	previousTokenLine int // -1 means "no token emitted yet"

	trie       *Trie
	settings   *Settings
	dialect    DialectSettings
	tokenTypes TokenTypeSettings
}

func newState(sql string, settings *Settings, tokenTypes TokenTypeSettings, dialect DialectSettings, trie *Trie) *state {
	runes := []rune(sql)
	return &state{
		sql:               runes,
		size:              len(runes),
		line:              1,
		previousTokenLine: -1,
		trie:              trie,
		settings:          settings,
		dialect:           dialect,
		tokenTypes:        tokenTypes,
	}
}

func (s *state) tokenize() ([]Token, error) {
	if err := s.scan(false, 0); err != nil {
		return s.tokens, err
	}
	return s.tokens, nil
}

// scan is the dispatch loop. When hasUntil is set, it stops as soon as the
// peeked character equals until — used by command-swallow to stop at ';'.
func (s *state) scan(hasUntil bool, until rune) error {
	for s.size > 0 && !s.isEnd {
		cur := s.current
		for cur < s.size {
			ch, err := s.charAt(cur)
			if err != nil {
				return err
			}
			if ch == ' ' || ch == '\t' {
				cur++
			} else {
				break
			}
		}

		offset := 1
		if cur > s.current {
			offset = cur - s.current
		}

		s.start = cur
		if err := s.advance(offset); err != nil {
			return err
		}

		if s.currentChar == 0 {
			break
		}

		if !s.isWhitespaceRune(s.currentChar) {
			switch {
			case isDigit(s.currentChar):
				if err := s.scanNumber(); err != nil {
					return err
				}
			default:
				if end, ok := s.settings.Identifiers[s.currentChar]; ok {
					if err := s.scanIdentifier(string(end)); err != nil {
						return err
					}
				} else if err := s.scanKeyword(); err != nil {
					return err
				}
			}
		}

		if hasUntil && s.peekChar == until {
			break
		}
	}
	if len(s.tokens) > 0 && len(s.comments) > 0 {
		s.tokens[len(s.tokens)-1].appendComments(&s.comments)
	}
	return nil
}

func (s *state) isWhitespaceRune(r rune) bool {
	return unicode.IsSpace(r)
}

func (s *state) charAt(index int) (rune, error) {
	if index < 0 || index >= s.size {
		return 0, errIndexOutOfBounds(index, s.size)
	}
	return s.sql[index], nil
}

// advance moves the cursor by i runes (i may be negative, on rewinds) and
// refreshes currentChar/peekChar/isEnd. Line/column bookkeeping looks at
// the char that was current BEFORE this call, so break detection lags by
// one advance.
func (s *state) advance(i int) error {
	if tt, ok := s.settings.WhiteSpace[s.currentChar]; ok && tt == s.tokenTypes.Break {
		if !(s.currentChar == '\r' && s.peekChar == '\n') {
			s.column = i
			s.line++
		}
	} else {
		s.column += i
	}

	s.current += i
	s.isEnd = s.current >= s.size

	cc, err := s.charAt(s.current - 1)
	if err != nil {
		return err
	}
	s.currentChar = cc

	if s.isEnd {
		s.peekChar = 0
	} else {
		pc, err := s.charAt(s.current)
		if err != nil {
			return err
		}
		s.peekChar = pc
	}
	return nil
}

// chars returns the size runes starting at the current char (current-1),
// or "" if that range runs past the end of input.
func (s *state) chars(size int) string {
	start := s.current - 1
	end := start + size
	if start < 0 || end > s.size {
		return ""
	}
	return string(s.sql[start:end])
}

func (s *state) text() string {
	return string(s.sql[s.start:s.current])
}

// add emits a token and runs command-swallow if tokenType is a command.
func (s *state) add(tokenType TokenType, text *string) error {
	s.previousTokenLine = s.line

	if len(s.comments) > 0 && len(s.tokens) > 0 && tokenType == s.tokenTypes.Semicolon {
		s.tokens[len(s.tokens)-1].appendComments(&s.comments)
	}

	txt := s.text()
	if text != nil {
		txt = *text
	}
	comments := s.comments
	s.comments = nil

	s.tokens = append(s.tokens, newToken(tokenType, txt, s.line, s.column, s.start, s.current-1, comments))

	if _, isCommand := s.settings.Commands[tokenType]; isCommand && s.peekChar != ';' {
		allow := len(s.tokens) == 1
		if !allow {
			_, allow = s.settings.CommandPrefixTokens[s.tokens[len(s.tokens)-2].Type]
		}
		if allow {
			start := s.current
			tokensLen := len(s.tokens)
			if err := s.scan(true, ';'); err != nil {
				return err
			}
			s.tokens = s.tokens[:tokensLen]
			raw := strings.TrimSpace(string(s.sql[start:s.current]))
			if raw != "" {
				if err := s.add(s.tokenTypes.String, &raw); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// scanKeyword is the central state machine: greedy longest-phrase match
// over the trie, with embedded whitespace collapsed to a single space.
func (s *state) scanKeyword() error {
	size := 0
	var word *string
	chars := s.text()
	var currentChar rune
	prevSpace := false

	isSingleToken := false
	if rs := []rune(chars); len(rs) == 1 {
		if _, ok := s.settings.SingleTokens[rs[0]]; ok {
			isSingleToken = true
		}
	}

	result, node := s.trie.Root().Contains(foldUpper(chars))

	for chars != "" {
		if result == TrieFailed {
			break
		}
		if result == TrieExists {
			w := chars
			word = &w
		}

		end := s.current + size
		size++

		var skip bool
		if end < s.size {
			cc, err := s.charAt(end)
			if err != nil {
				return err
			}
			currentChar = cc
			if _, ok := s.settings.SingleTokens[currentChar]; ok {
				isSingleToken = true
			}
			isSpace := s.isWhitespaceRune(currentChar)
			if !isSpace || !prevSpace {
				if isSpace {
					currentChar = ' '
				}
				chars += string(currentChar)
				prevSpace = isSpace
			} else {
				skip = true
			}
		} else {
			currentChar = 0
			break
		}

		if skip {
			result = TriePrefix
		} else {
			result, node = node.Contains(foldUpper(string(currentChar)))
		}
	}

	if word != nil {
		w := *word
		consumed, err := s.scanString(w)
		if err != nil {
			return err
		}
		if consumed {
			return nil
		}
		consumed, err = s.scanComment(w)
		if err != nil {
			return err
		}
		if consumed {
			return nil
		}
		if prevSpace || isSingleToken || currentChar == 0 {
			if err := s.advance(size - 1); err != nil {
				return err
			}
			normalized := foldUpper(w)
			tt, ok := s.settings.Keywords[normalized]
			if !ok {
				return errUnexpectedKeyword(normalized)
			}
			text := w
			return s.add(tt, &text)
		}
	}

	if tt, ok := s.settings.SingleTokens[s.currentChar]; ok {
		text := string(s.currentChar)
		return s.add(tt, &text)
	}
	return s.scanVar()
}

// scanComment handles both block and line comments once scanKeyword has
// matched commentStart against settings.Comments.
func (s *state) scanComment(commentStart string) (bool, error) {
	end, ok := s.settings.Comments[commentStart]
	if !ok {
		return false, nil
	}
	commentStartLine := s.line
	commentStartSize := len([]rune(commentStart))

	if end != "" {
		if err := s.advance(commentStartSize); err != nil {
			return true, err
		}

		commentCount := 1
		endSize := len([]rune(end))
		for !s.isEnd {
			if s.chars(endSize) == end {
				commentCount--
				if commentCount == 0 {
					break
				}
			}
			if err := s.advance(1); err != nil {
				return true, err
			}
			if s.settings.NestedComments && !s.isEnd && s.chars(commentStartSize) == commentStart {
				if err := s.advance(commentStartSize); err != nil {
					return true, err
				}
				commentCount++
			}
		}

		text := []rune(s.text())
		body := string(text[commentStartSize : len(text)-endSize+1])
		s.comments = append(s.comments, body)
		if err := s.advance(endSize - 1); err != nil {
			return true, err
		}
	} else {
		for !s.isEnd {
			tt, ok := s.settings.WhiteSpace[s.peekChar]
			if ok && tt == s.tokenTypes.Break {
				break
			}
			if err := s.advance(1); err != nil {
				return true, err
			}
		}
		text := []rune(s.text())
		s.comments = append(s.comments, string(text[commentStartSize:]))
	}

	if commentStart == s.settings.HintStart && len(s.tokens) > 0 {
		lastType := s.tokens[len(s.tokens)-1].Type
		if _, ok := s.settings.TokensPrecedingHint[lastType]; ok {
			if err := s.add(s.tokenTypes.Hint, nil); err != nil {
				return true, err
			}
		}
	}

	// Leading comments attach to the next token; a comment starting on the
	// same line as the previously emitted token instead attaches to it.
	if s.previousTokenLine == commentStartLine {
		s.tokens[len(s.tokens)-1].appendComments(&s.comments)
		s.previousTokenLine = s.line
	}

	return true, nil
}

// scanString handles quotes and format-prefixed strings (hex, bit, raw,
// heredoc). It returns false when word matches neither, so scanKeyword can
// fall through to scanComment.
func (s *state) scanString(word string) (bool, error) {
	var (
		hasBase bool
		base    int
		tt      TokenType
		end     string
	)

	if e, ok := s.settings.Quotes[word]; ok {
		end = e
		tt = s.tokenTypes.String
	} else if fs, ok := s.settings.FormatStrings[word]; ok {
		end = fs.End
		tt = fs.Type
		switch tt {
		case s.tokenTypes.HexString:
			hasBase, base = true, 16
		case s.tokenTypes.BitString:
			hasBase, base = true, 2
		case s.tokenTypes.HeredocString:
			if err := s.advance(1); err != nil {
				return true, err
			}
			tag := ""
			if string(s.currentChar) != end {
				extracted, err := s.extractString(end, false, true, !s.settings.HeredocTagIsIdentifier)
				if err != nil {
					return true, err
				}
				tag = extracted
			}
			if tag != "" && s.settings.HeredocTagIsIdentifier && (s.isEnd || !isIdentifierText(tag)) {
				if !s.isEnd {
					if err := s.advance(-1); err != nil {
						return true, err
					}
				}
				if err := s.advance(-len([]rune(tag))); err != nil {
					return true, err
				}
				if err := s.add(s.tokenTypes.HeredocStringAlternative, nil); err != nil {
					return true, err
				}
				return true, nil
			}
			end = word + tag + end
		}
	} else {
		return false, nil
	}

	if err := s.advance(len([]rune(word))); err != nil {
		return true, err
	}
	text, err := s.extractString(end, false, tt == s.tokenTypes.RawString, true)
	if err != nil {
		return true, err
	}

	if tt == s.tokenTypes.HeredocString {
		// A heredoc token's text keeps its opening and closing tag delimiters.
		text = s.text()
	}

	if hasBase && !parsesAsRadixInteger(text, base) {
		return true, errInvalidRadixString(s.line, s.start)
	}

	return true, s.add(tt, &text)
}

func isIdentifierText(str string) bool {
	for i, r := range str {
		if i == 0 {
			if !isAlphaOrUnderscore(r) {
				return false
			}
		} else if !isIdentifierRune(r) {
			return false
		}
	}
	return true
}

func (s *state) scanNumber() error {
	if s.currentChar == '0' {
		switch upper(s.peekChar) {
		case 'B':
			if s.settings.HasBitStrings {
				return s.scanRadixString(2, s.tokenTypes.BitString)
			}
			return s.add(s.tokenTypes.Number, nil)
		case 'X':
			if s.settings.HasHexStrings {
				return s.scanRadixString(16, s.tokenTypes.HexString)
			}
			return s.add(s.tokenTypes.Number, nil)
		}
	}

	decimal := false
	scientific := 0

	for {
		switch {
		case isDigit(s.peekChar):
			if err := s.advance(1); err != nil {
				return err
			}
		case s.peekChar == '.' && !decimal:
			if len(s.tokens) > 0 && s.tokens[len(s.tokens)-1].Type == s.tokenTypes.Parameter {
				return s.add(s.tokenTypes.Number, nil)
			}
			decimal = true
			if err := s.advance(1); err != nil {
				return err
			}
		case (s.peekChar == '-' || s.peekChar == '+') && scientific == 1:
			scientific++
			if err := s.advance(1); err != nil {
				return err
			}
		case upper(s.peekChar) == 'E' && scientific == 0:
			scientific++
			if err := s.advance(1); err != nil {
				return err
			}
		case isAlphaOrUnderscore(s.peekChar):
			return s.scanNumberSuffix(decimal)
		default:
			return s.add(s.tokenTypes.Number, nil)
		}
	}
}

// scanNumberSuffix handles the trailing alphabetic run after a digit run:
// typed-literal suffixes (123L), underscore-separated numerics, identifiers
// that start with a digit, or an ordinary number followed by a separate token.
func (s *state) scanNumberSuffix(decimal bool) error {
	_ = decimal
	numberText := s.text()
	var literalRunes []rune
	for !s.isWhitespaceRune(s.peekChar) && !s.isEnd {
		if _, ok := s.settings.SingleTokens[s.peekChar]; ok {
			break
		}
		literalRunes = append(literalRunes, s.peekChar)
		if err := s.advance(1); err != nil {
			return err
		}
	}
	literal := string(literalRunes)

	var resolvedType TokenType
	hasResolved := false
	if name, ok := s.settings.NumericLiterals[foldUpper(literal)]; ok {
		resolvedType, hasResolved = s.settings.Keywords[foldUpper(name)]
	}

	replaced := strings.ReplaceAll(literal, "_", "")

	switch {
	case hasResolved:
		if err := s.add(s.tokenTypes.Number, &numberText); err != nil {
			return err
		}
		dcolon := "::"
		if err := s.add(s.tokenTypes.Dcolon, &dcolon); err != nil {
			return err
		}
		return s.add(resolvedType, &literal)
	case s.dialect.NumbersCanBeUnderscoreSeparated && isAllDigits(replaced):
		combined := numberText + replaced
		return s.add(s.tokenTypes.Number, &combined)
	case s.dialect.IdentifiersCanStartWithDigit:
		return s.add(s.tokenTypes.Var, nil)
	default:
		if err := s.advance(-len([]rune(literal))); err != nil {
			return err
		}
		return s.add(s.tokenTypes.Number, &numberText)
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func (s *state) scanRadixString(radix int, tt TokenType) error {
	if err := s.advance(1); err != nil {
		return err
	}
	full, err := s.extractValue()
	if err != nil {
		return err
	}
	runes := []rune(full)
	if len(runes) < 2 {
		return s.add(s.tokenTypes.Identifier, nil)
	}
	value := string(runes[2:])
	if allDigitsValidForRadix(value, radix) {
		return s.add(tt, &value)
	}
	return s.add(s.tokenTypes.Identifier, nil)
}

func (s *state) scanVar() error {
	for {
		var peek rune
		if !s.isWhitespaceRune(s.peekChar) {
			peek = s.peekChar
		}
		if peek == 0 {
			break
		}
		_, isVarSingle := s.settings.VarSingleTokens[peek]
		_, isSingle := s.settings.SingleTokens[peek]
		if !isVarSingle && isSingle {
			break
		}
		if err := s.advance(1); err != nil {
			return err
		}
	}

	var tt TokenType
	if len(s.tokens) > 0 && s.tokens[len(s.tokens)-1].Type == s.tokenTypes.Parameter {
		tt = s.tokenTypes.Var
	} else if resolved, ok := s.settings.Keywords[foldUpper(s.text())]; ok {
		tt = resolved
	} else {
		tt = s.tokenTypes.Var
	}
	return s.add(tt, nil)
}

func (s *state) scanIdentifier(end string) error {
	if err := s.advance(1); err != nil {
		return err
	}
	text, err := s.extractString(end, true, false, true)
	if err != nil {
		return err
	}
	return s.add(s.tokenTypes.Identifier, &text)
}

// extractString consumes runes up to delimiter, honoring escapes: an escaped
// delimiter or escape pair is appended and scanning continues. It stops when
// the delimiter is reached or at end of input (raising unless raiseUnmatched
// is false).
func (s *state) extractString(delimiter string, useIdentifierEscapes bool, rawString bool, raiseUnmatched bool) (string, error) {
	var b strings.Builder

	var escapes map[rune]struct{}
	if useIdentifierEscapes {
		combined := make(map[rune]struct{}, len(s.settings.IdentifierEscapes)+len(delimiter))
		for r := range s.settings.IdentifierEscapes {
			combined[r] = struct{}{}
		}
		for _, r := range delimiter {
			combined[r] = struct{}{}
		}
		escapes = combined
	} else {
		escapes = s.settings.StringEscapes
	}

	delimiterRuneLen := len([]rune(delimiter))

	for {
		if !rawString && len(s.dialect.UnescapedSequences) > 0 && !s.isWhitespaceRune(s.peekChar) {
			if _, ok := s.settings.StringEscapes[s.currentChar]; ok {
				key := string(s.currentChar) + string(s.peekChar)
				if repl, ok := s.dialect.UnescapedSequences[key]; ok {
					if err := s.advance(2); err != nil {
						return "", err
					}
					b.WriteString(repl)
					continue
				}
			}
		}

		if s.settings.StringEscapesAllowedInRawStrings || !rawString {
			if _, ok := escapes[s.currentChar]; ok {
				_, isQuoteStart := s.settings.Quotes[string(s.currentChar)]
				if s.currentChar == s.peekChar || !isQuoteStart {
					equalDelimiter := delimiter == string(s.peekChar)
					_, peekIsEscape := escapes[s.peekChar]
					if equalDelimiter || peekIsEscape {
						if equalDelimiter {
							b.WriteRune(s.peekChar)
						} else {
							b.WriteRune(s.currentChar)
							b.WriteRune(s.peekChar)
						}
						if s.current+1 < s.size {
							if err := s.advance(2); err != nil {
								return "", err
							}
						} else {
							return "", errMissingDelimiter(delimiter, s.line, s.current)
						}
						continue
					}
				}
			}
		}

		if s.chars(delimiterRuneLen) == delimiter {
			if delimiterRuneLen > 1 {
				if err := s.advance(delimiterRuneLen - 1); err != nil {
					return "", err
				}
			}
			break
		}

		if s.isEnd {
			if !raiseUnmatched {
				b.WriteRune(s.currentChar)
				return b.String(), nil
			}
			return "", errMissingDelimiter(delimiter, s.line, s.current)
		}

		cur := s.current - 1
		if err := s.advance(1); err != nil {
			return "", err
		}
		b.WriteString(string(s.sql[cur : s.current-1]))
	}
	return b.String(), nil
}

func (s *state) extractValue() (string, error) {
	for {
		_, isSingle := s.settings.SingleTokens[s.peekChar]
		if s.isWhitespaceRune(s.peekChar) || s.isEnd || isSingle {
			break
		}
		if err := s.advance(1); err != nil {
			return "", err
		}
	}
	return s.text(), nil
}
