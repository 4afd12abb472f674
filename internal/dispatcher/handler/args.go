package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Argument parsing errors.
var (
	// ErrUnterminatedString indicates a quoted argument without a closing quote.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrInvalidEscape indicates an unknown escape inside a quoted argument.
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// SplitCommand splits a command line into the command name and its raw
// argument string.
func SplitCommand(line string) (name, args string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// ParseArgs splits a raw argument string into arguments. Arguments are
// separated by whitespace; a double-quoted argument may contain
// whitespace and the escapes \" \n \t \r and \\.
func ParseArgs(s string) ([]string, error) {
	var (
		args   []string
		buf    strings.Builder
		inWord bool
	)
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, buf.String())
				buf.Reset()
				inWord = false
			}
		case r == '"' && !inWord:
			end, err := readQuoted(rs, i+1, &buf)
			if err != nil {
				return nil, err
			}
			args = append(args, buf.String())
			buf.Reset()
			i = end
		default:
			buf.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		args = append(args, buf.String())
	}
	return args, nil
}

// readQuoted reads a quoted string starting after the opening quote and
// returns the index of the closing quote.
func readQuoted(rs []rune, i int, buf *strings.Builder) (int, error) {
	for ; i < len(rs); i++ {
		switch rs[i] {
		case '"':
			return i, nil
		case '\\':
			if i+1 >= len(rs) {
				return 0, ErrUnterminatedString
			}
			i++
			r, ok := quotedEscape(rs[i])
			if !ok {
				return 0, fmt.Errorf("%w '\\%c'", ErrInvalidEscape, rs[i])
			}
			buf.WriteRune(r)
		default:
			buf.WriteRune(rs[i])
		}
	}
	return 0, ErrUnterminatedString
}

func quotedEscape(r rune) (rune, bool) {
	switch r {
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '\\':
		return '\\', true
	}
	return 0, false
}

// Unescape expands \n and \t in unquoted literal text. Other backslashes
// are kept as typed.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		if rs[i] == '\\' && i+1 < len(rs) {
			switch rs[i+1] {
			case 'n':
				sb.WriteRune('\n')
				i++
				continue
			case 't':
				sb.WriteRune('\t')
				i++
				continue
			}
		}
		sb.WriteRune(rs[i])
	}
	return sb.String()
}

// Literal returns the text an argument string stands for: the content of
// a single quoted argument with its escapes applied, or the raw text with
// \n and \t expanded.
func Literal(args string) (string, error) {
	trimmed := strings.TrimSpace(args)
	if strings.HasPrefix(trimmed, `"`) {
		parsed, err := ParseArgs(trimmed)
		if err != nil {
			return "", err
		}
		if len(parsed) == 1 {
			return parsed[0], nil
		}
	}
	return Unescape(args), nil
}
