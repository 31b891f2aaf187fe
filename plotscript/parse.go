package plotscript

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseFile reads a whole program from disk.
func ParseFile(filename string) (Expression, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Expression{}, fmt.Errorf("open program: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads exactly one expression from r.
func Parse(r io.Reader) (Expression, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Expression{}, fmt.Errorf("read program: %w", err)
	}
	return parse(string(b))
}

func mustParse(program string) Expression {
	e, err := parse(program)
	if err != nil {
		panic(err)
	}
	return e
}

func parse(program string) (Expression, error) {
	tokens, err := tokenize(program)
	if err != nil {
		return Expression{}, err
	}
	if len(tokens) == 0 {
		return Expression{}, parseErrorf("empty program")
	}
	e, rest, err := readFromTokens(tokens)
	if err != nil {
		return Expression{}, err
	}
	if len(rest) > 0 {
		return Expression{}, parseErrorf("unexpected %q after expression", rest[0])
	}
	return e, nil
}

func tokenize(program string) ([]string, error) {
	var tokens []string
	for {
		token, rest, err := nextToken(program)
		if err != nil {
			return nil, err
		}
		if token == "" {
			return tokens, nil
		}
		tokens = append(tokens, token)
		program = rest
	}
}

// nextToken returns "" at the end of input. String tokens keep their quotes.
func nextToken(program string) (string, string, error) {
	program = strings.TrimSpace(program)
	// comment: skip until end of line
	for strings.HasPrefix(program, ";") {
		_, rest, _ := strings.Cut(program, "\n")
		program = strings.TrimSpace(rest)
	}

	if strings.HasPrefix(program, `"`) {
		end := strings.IndexByte(program[1:], '"')
		if end < 0 {
			return "", "", parseErrorf(`unclosed string quote '"'`)
		}
		return program[:end+2], program[end+2:], nil
	}

	var token []byte
	for len(program) > 0 {
		r, size := utf8.DecodeRuneInString(program)
		if strings.ContainsRune(`()";`, r) {
			if len(token) == 0 {
				return string(r), program[size:], nil
			}
			return string(token), program, nil
		}
		if unicode.IsSpace(r) {
			break
		}
		program = program[size:]
		token = utf8.AppendRune(token, r)
	}
	return string(token), program, nil
}

// readFromTokens reads one expression. A list must start with an atom,
// which becomes the head of the node.
func readFromTokens(tokens []string) (Expression, []string, error) {
	if len(tokens) == 0 {
		return Expression{}, nil, parseErrorf("unexpected end of input")
	}
	token := tokens[0]
	tokens = tokens[1:]
	switch token {
	case ")":
		return Expression{}, nil, parseErrorf("unexpected ')'")
	case "(":
		if len(tokens) == 0 || tokens[0] == "(" || tokens[0] == ")" {
			return Expression{}, nil, parseErrorf("expected an atom after '('")
		}
		head, err := atom(tokens[0])
		if err != nil {
			return Expression{}, nil, err
		}
		tokens = tokens[1:]
		var tail []Expression
		for {
			if len(tokens) == 0 {
				return Expression{}, nil, parseErrorf("missing ')'")
			}
			if tokens[0] == ")" {
				return NewCompound(head, tail...), tokens[1:], nil
			}
			child, rest, err := readFromTokens(tokens)
			if err != nil {
				return Expression{}, nil, err
			}
			tail = append(tail, child)
			tokens = rest
		}
	}
	a, err := atom(token)
	if err != nil {
		return Expression{}, nil, err
	}
	return NewExpression(a), tokens, nil
}

func atom(token string) (Atom, error) {
	a := NewAtomFromToken(token)
	if a.IsNone() {
		return Atom{}, parseErrorf("invalid token %q", token)
	}
	return a, nil
}
