package regexast

import (
	"github.com/0x4d5352/regocross/internal/alphabet"
	"github.com/0x4d5352/regocross/internal/charblock"
	"github.com/0x4d5352/regocross/internal/constraint"
)

// CharBlockLeaf is a single length-1 character choice: its one value
// consumes one position, intersected with the block's CharSet.
type CharBlockLeaf struct {
	base
	Block Block
	atEnd bool
}

// Block is an alias for charblock.Block, so a leaf can hold any
// charblock variant.
type Block = charblock.Block

func NewCharBlockLeaf(b Block) *CharBlockLeaf {
	return &CharBlockLeaf{Block: b}
}

func (l *CharBlockLeaf) Children() []Node          { return nil }
func (l *CharBlockLeaf) LengthOfCurrentValue() int { return 1 }
func (l *CharBlockLeaf) AtEnd() bool               { return l.atEnd }
func (l *CharBlockLeaf) Rewind(pos int)            { l.beginPos = pos; l.atEnd = false }
func (l *CharBlockLeaf) Increment()                { l.atEnd = true }
func (l *CharBlockLeaf) Clone() Node               { return NewCharBlockLeaf(l.Block) }

func (l *CharBlockLeaf) ApplyOnce(c *constraint.Constraint, offset int) bool {
	pos := l.beginPos + offset
	if pos < 0 || pos >= c.Size() {
		return false
	}
	return c.Intersect(pos, l.Block.Characters(alphabet.Global()))
}

func (l *CharBlockLeaf) ExplicitCharacters() string { return l.Block.ExplicitCharacters() }
func (l *CharBlockLeaf) String() string             { return l.Block.String() }

// StringLeaf is produced only by concatenation fusion: a run of two or
// more blocks applied at consecutive positions as a single leaf.
type StringLeaf struct {
	base
	Blocks []Block
	atEnd  bool
}

func NewStringLeaf(blocks []Block) *StringLeaf {
	if len(blocks) < 2 {
		panic("regexast: StringLeaf requires at least 2 blocks")
	}
	return &StringLeaf{Blocks: blocks}
}

func (l *StringLeaf) Children() []Node          { return nil }
func (l *StringLeaf) LengthOfCurrentValue() int { return len(l.Blocks) }
func (l *StringLeaf) AtEnd() bool               { return l.atEnd }
func (l *StringLeaf) Rewind(pos int)            { l.beginPos = pos; l.atEnd = false }
func (l *StringLeaf) Increment()                { l.atEnd = true }
func (l *StringLeaf) Clone() Node               { return NewStringLeaf(l.Blocks) }

func (l *StringLeaf) ApplyOnce(c *constraint.Constraint, offset int) bool {
	a := alphabet.Global()
	for i, b := range l.Blocks {
		pos := l.beginPos + offset + i
		if pos < 0 || pos >= c.Size() {
			return false
		}
		if !c.Intersect(pos, b.Characters(a)) {
			return false
		}
	}
	return true
}

func (l *StringLeaf) ExplicitCharacters() string {
	s := ""
	for _, b := range l.Blocks {
		s += b.ExplicitCharacters()
	}
	return s
}

func (l *StringLeaf) String() string {
	s := ""
	for _, b := range l.Blocks {
		s += b.String()
	}
	return s
}
