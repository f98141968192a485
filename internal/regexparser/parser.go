// Package regexparser turns a regex source string into a
// github.com/0x4d5352/regocross/internal/regexast tree: an LL
// recursive-descent parser with backtracking via the tokenizer's
// multi-token push-back.
//
// Grammar (informal):
//
//	alternation   := concatenation ('|' concatenation)*
//	concatenation := repetition*
//	repetition    := atom ('*' | '+' | '?' | '{' count '}')?
//	count         := INT | INT ',' | INT ',' INT
//	atom          := '.' | anchor | boundary | backreference | class
//	               | shorthand | literal | group
//	group         := '(' alternation ')'
//	               | '(?:' alternation ')'
//	               | '(?=' alternation ')'
//	class         := '[' '^'? classitem+ ']'
package regexparser

import (
	"github.com/0x4d5352/regocross/internal/charblock"
	"github.com/0x4d5352/regocross/internal/regexast"
	"github.com/0x4d5352/regocross/internal/token"
)

// Parse lexes and parses src into a regexast tree, then runs the
// post-parse structural checks (self-reference, lookahead-crossing
// backreferences). It returns *ParseError for lexical/grammar failures
// and *StructureError for semantic ones.
func Parse(src string) (regexast.Node, error) {
	p := &parser{tok: token.New(src), src: src, nextGroup: 1}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if next := p.tok.Next(); next.Kind != token.EOF {
		return nil, &ParseError{Message: "unexpected trailing input", Source: src, Offset: next.Pos}
	}
	if err := validateStructure(root); err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	tok       *token.Tokenizer
	src       string
	nextGroup int
}

func (p *parser) errf(pos int, msg string) error {
	return &ParseError{Message: msg, Source: p.src, Offset: pos}
}

// parseAlternation handles top-level '|'.
func (p *parser) parseAlternation() (regexast.Node, error) {
	left, err := p.parseConcatenation()
	if err != nil {
		return nil, err
	}
	alts := []regexast.Node{left}
	for {
		if p.tok.Peek().Kind != token.Or {
			break
		}
		p.tok.Next()
		right, err := p.parseConcatenation()
		if err != nil {
			return nil, err
		}
		alts = append(alts, right)
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return regexast.NewUnion(alts), nil
}

// parseConcatenation consumes repetitions until it hits '|', a group
// close, or EOF. Zero repetitions yields Epsilon.
func (p *parser) parseConcatenation() (regexast.Node, error) {
	var nodes []regexast.Node
	for {
		k := p.tok.Peek().Kind
		if k == token.Or || k == token.GroupClose || k == token.EOF {
			break
		}
		n, err := p.parseRepetition()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 0 {
		return regexast.NewEpsilon(), nil
	}
	result := nodes[0]
	for _, n := range nodes[1:] {
		result = regexast.NewConcatenation(result, n)
	}
	return result, nil
}

func (p *parser) parseRepetition() (regexast.Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	switch p.tok.Peek().Kind {
	case token.Kleene:
		p.tok.Next()
		return regexast.NewRepetition(atom, 0, -1), nil
	case token.Plus:
		p.tok.Next()
		return regexast.NewRepetition(atom, 1, -1), nil
	case token.Question:
		p.tok.Next()
		return regexast.NewRepetition(atom, 0, 1), nil
	case token.RepOpen:
		open := p.tok.Next()
		min, max, err := p.parseRepetitionCount(open.Pos)
		if err != nil {
			return nil, err
		}
		return regexast.NewRepetition(atom, min, max), nil
	default:
		return atom, nil
	}
}

// parseRepetitionCount parses the body of {n}, {n,} or {n,m} after the
// opening '{' has already been consumed.
func (p *parser) parseRepetitionCount(openPos int) (min, max int, err error) {
	first := p.tok.Next()
	if first.Kind != token.RepInt {
		return 0, 0, p.errf(first.Pos, "expected integer after '{'")
	}
	min = first.Int

	next := p.tok.Next()
	switch next.Kind {
	case token.RepClose:
		return min, min, nil
	case token.RepComma:
		after := p.tok.Next()
		if after.Kind == token.RepClose {
			return min, -1, nil
		}
		if after.Kind != token.RepInt {
			return 0, 0, p.errf(after.Pos, "expected integer or '}' after ','")
		}
		max = after.Int
		if max < min {
			return 0, 0, p.errf(openPos, "repetition lower bound exceeds upper bound")
		}
		close := p.tok.Next()
		if close.Kind != token.RepClose {
			return 0, 0, p.errf(close.Pos, "expected '}'")
		}
		return min, max, nil
	default:
		return 0, 0, p.errf(next.Pos, "expected ',' or '}' after repetition count")
	}
}

func (p *parser) parseAtom() (regexast.Node, error) {
	t := p.tok.Next()
	switch t.Kind {
	case token.Invalid:
		return nil, p.errf(t.Pos, t.Msg)
	case token.EOF:
		return nil, p.errf(t.Pos, "unexpected end of pattern")
	case token.AnyChar:
		return regexast.NewCharBlockLeaf(charblock.Dot{}), nil
	case token.Char:
		return regexast.NewCharBlockLeaf(charblock.Single{Char: t.Byte}), nil
	case token.Shorthand:
		return regexast.NewCharBlockLeaf(charblock.Shorthand{Kind: shorthandKind(t.Byte)}), nil
	case token.StartAnchorCaret, token.StartAnchorA:
		return regexast.NewAtStart(), nil
	case token.EndAnchorDollar, token.EndAnchorZ:
		return regexast.NewAtEnd(), nil
	case token.WordBoundary:
		return regexast.NewWordBoundary(), nil
	case token.NotWordBoundary:
		return regexast.NewNotWordBoundary(), nil
	case token.Backreference:
		if t.Int >= p.nextGroup {
			return nil, p.errf(t.Pos, "backreference to a group that has not been opened yet")
		}
		return regexast.NewBackreference(t.Int), nil
	case token.ClassOpen:
		return p.parseClass(t.Pos)
	case token.GroupOpen:
		return p.parseGroup(t.Pos, groupCapturing)
	case token.NonCapGroupOpen:
		return p.parseGroup(t.Pos, groupNonCapturing)
	case token.LookaheadOpen:
		return p.parseGroup(t.Pos, groupLookahead)
	default:
		return nil, p.errf(t.Pos, "unexpected token "+t.String())
	}
}

type groupKind int

const (
	groupCapturing groupKind = iota
	groupNonCapturing
	groupLookahead
)

func (p *parser) parseGroup(openPos int, kind groupKind) (regexast.Node, error) {
	var number int
	if kind == groupCapturing {
		number = p.nextGroup
		p.nextGroup++
	}

	child, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}

	close := p.tok.Next()
	if close.Kind != token.GroupClose {
		return nil, p.errf(close.Pos, "expected ')'")
	}

	switch kind {
	case groupCapturing:
		return regexast.NewCapturingGroup(number, child), nil
	case groupNonCapturing:
		return regexast.NewNonCapturingGroup(child), nil
	case groupLookahead:
		return regexast.NewPositiveLookahead(child), nil
	default:
		panic("regexparser: unknown group kind")
	}
}

// parseClass parses the body of a bracket class through the
// tokenizer's NextInClass mode, where '-', ']' and a leading '^' are
// significant and every other character (including what would
// otherwise be a metacharacter like '*' or '(') is literal.
func (p *parser) parseClass(openPos int) (regexast.Node, error) {
	negated := false
	atStart := true
	if t := p.tok.NextInClass(atStart); t.Kind == token.ClassNegate {
		negated = true
	} else {
		p.tok.PushBack(t)
	}

	var items []charblock.Block
	for {
		t := p.tok.NextInClass(false)
		if t.Kind == token.ClassClose {
			break
		}
		if t.Kind == token.EOF {
			return nil, p.errf(openPos, "unterminated character class")
		}
		if t.Kind == token.Invalid {
			return nil, p.errf(t.Pos, t.Msg)
		}

		var lo byte
		switch t.Kind {
		case token.Char:
			lo = t.Byte
		case token.Dash:
			lo = '-'
		case token.Shorthand:
			items = append(items, charblock.Shorthand{Kind: shorthandKind(t.Byte)})
			continue
		default:
			return nil, p.errf(t.Pos, "unexpected token in character class")
		}

		peek := p.tok.NextInClass(false)
		if peek.Kind == token.Dash {
			hiTok := p.tok.NextInClass(false)
			if hiTok.Kind != token.Char {
				return nil, p.errf(hiTok.Pos, "expected character after '-' in class range")
			}
			if hiTok.Byte < lo {
				return nil, p.errf(t.Pos, "character range out of order")
			}
			items = append(items, charblock.Range{Lo: lo, Hi: hiTok.Byte})
		} else {
			p.tok.PushBack(peek)
			items = append(items, charblock.Single{Char: lo})
		}
	}
	if len(items) == 0 {
		return nil, p.errf(openPos, "empty character class")
	}
	return regexast.NewCharBlockLeaf(charblock.BracketClass{Negated: negated, Items: items}), nil
}

func shorthandKind(b byte) charblock.ShorthandKind {
	switch b {
	case 'd':
		return charblock.Digit
	case 'D':
		return charblock.NotDigit
	case 'w':
		return charblock.Word
	case 'W':
		return charblock.NotWord
	case 's':
		return charblock.Space
	case 'S':
		return charblock.NotSpace
	default:
		panic("regexparser: unknown shorthand byte")
	}
}
