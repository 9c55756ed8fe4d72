package textbuffer

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// namedDescendantForByteRange returns the deepest named node under n whose
// byte range contains [start, end], matching the semantics of
// tree-sitter's own node_named_descendant_for_byte_range (exposed by this
// binding only in its point-range form).
func namedDescendantForByteRange(n *sitter.Node, start, end uint32) *sitter.Node {
	if n == nil || end < n.StartByte() || start > n.EndByte() {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		if start >= c.StartByte() && end <= c.EndByte() {
			if deeper := namedDescendantForByteRange(c, start, end); deeper != nil {
				return deeper
			}
			return c
		}
	}
	return n
}

// ParserLanguage names a tree-sitter grammar a Buffer can be opened with
// (spec §4.H: "a buffer with a recognized extension keeps an incremental
// parse tree alongside its lines"). It is resolved from a file extension
// by LanguageForExtension and wraps the concrete *sitter.Language so
// internal/textbuffer's own API never leaks the tree-sitter package to
// its callers.
type ParserLanguage struct {
	grammar *sitter.Language
}

// LanguageForExtension returns the Language configured for ext (including
// the leading dot, e.g. ".go"), or the zero Language (no parsing, no line
// comment) if the extension is unrecognized.
func LanguageForExtension(ext string) Language {
	switch ext {
	case ".go":
		return Language{Name: "go", LineCommentPrefix: "//", Sitter: &ParserLanguage{grammar: golang.GetLanguage()}}
	case ".py":
		return Language{Name: "python", LineCommentPrefix: "#", Sitter: &ParserLanguage{grammar: python.GetLanguage()}}
	case ".js", ".jsx":
		return Language{Name: "javascript", LineCommentPrefix: "//", Sitter: &ParserLanguage{grammar: javascript.GetLanguage()}}
	case ".ts", ".tsx":
		return Language{Name: "typescript", LineCommentPrefix: "//", Sitter: &ParserLanguage{grammar: typescript.GetLanguage()}}
	default:
		return Language{}
	}
}

// Parser holds the incremental parse tree for one Buffer (spec §4.H).
// Each Parse call feeds the previous tree plus the edits accumulated
// since, so tree-sitter only reparses the regions the edits touched.
type Parser struct {
	lang    *ParserLanguage
	tree    *sitter.Tree
	changed []ByteRange
}

// ByteRange is a half-open [Start, End) span of the flat text.
type ByteRange struct {
	Start uint32
	End   uint32
}

// StyleTransition marks a byte offset at which the display style changes
// and the grammar node type that begins there.
type StyleTransition struct {
	Byte uint32
	Kind string
}

// NewParser returns a Parser for lang with no tree yet.
func NewParser(lang *ParserLanguage) *Parser {
	return &Parser{lang: lang}
}

// Parse feeds source (the full buffer text) and the edits made since the
// last Parse to tree-sitter, replacing the held tree with the reparse
// result. edits may be nil for an initial parse.
func (p *Parser) Parse(source []byte, edits []TextInputEdit) error {
	if p == nil || p.lang == nil || p.lang.grammar == nil {
		return nil
	}
	if p.tree != nil {
		for _, e := range edits {
			p.tree.Edit(sitter.EditInput{
				StartIndex:  e.StartByte,
				OldEndIndex: e.OldEndByte,
				NewEndIndex: e.NewEndByte,
			})
		}
	}
	parser := sitter.NewParser()
	parser.SetLanguage(p.lang.grammar)
	tree, err := parser.ParseCtx(context.Background(), p.tree, source)
	if err != nil {
		return fmt.Errorf("textbuffer: parse: %w", err)
	}
	p.tree = tree
	p.changed = p.changed[:0]
	for _, e := range edits {
		p.changed = append(p.changed, ByteRange{Start: e.StartByte, End: e.NewEndByte})
	}
	return nil
}

// ChangedRanges returns the byte ranges (in post-edit coordinates) whose
// styling may have changed since the previous Parse; empty after an
// initial full parse.
func (p *Parser) ChangedRanges() []ByteRange {
	if p == nil {
		return nil
	}
	out := make([]ByteRange, len(p.changed))
	copy(out, p.changed)
	return out
}

// AncestryAt returns the grammar node types enclosing byte offset off,
// deepest first, ending with the grammar's root node type.
func (p *Parser) AncestryAt(off uint32) []string {
	if p == nil || p.tree == nil {
		return nil
	}
	node := namedDescendantForByteRange(p.tree.RootNode(), off, off)
	var out []string
	for node != nil {
		out = append(out, node.Type())
		node = node.Parent()
	}
	return out
}

// StyleTransitions walks the tree's named leaves in byte order and emits
// a transition wherever the node type starting at an offset differs from
// the previous one, the byte-indexed style iterator of spec §4.H.
func (p *Parser) StyleTransitions() []StyleTransition {
	if p == nil || p.tree == nil {
		return nil
	}
	var out []StyleTransition
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.NamedChildCount() == 0 {
			if len(out) == 0 || out[len(out)-1].Kind != n.Type() {
				out = append(out, StyleTransition{Byte: n.StartByte(), Kind: n.Type()})
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(p.tree.RootNode())
	return out
}

// Dump returns the S-expression form of the current parse tree, or "" if
// there is none (no recognized language, or no successful parse yet).
func (p *Parser) Dump() string {
	if p == nil || p.tree == nil {
		return ""
	}
	return p.tree.RootNode().String()
}

// NodeKindAt returns the deepest named node's grammar type containing
// byte offset off, used by syntax-highlighting callers to style a byte
// range (spec §4.H: "style information is read out by byte position, not
// pushed").
func (p *Parser) NodeKindAt(off uint32) (string, bool) {
	if p == nil || p.tree == nil {
		return "", false
	}
	node := namedDescendantForByteRange(p.tree.RootNode(), off, off)
	if node == nil {
		return "", false
	}
	return node.Type(), true
}

// Dump exposes the buffer's current parse tree, or "" if the buffer has
// no recognized language or has never parsed successfully.
func (b *Buffer) Dump() string {
	return b.parser.Dump()
}

// Language reports the buffer's configured Language.
func (b *Buffer) Language() Language { return b.lang }

// Parser returns the buffer's incremental parser, or nil when the
// buffer's language has no grammar.
func (b *Buffer) Parser() *Parser { return b.parser }
