package parser

import (
	"fmt"
	"os"

	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/syntax"
)

// DefaultMaxFileSize is the largest document Parser accepts unless configured otherwise.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Parser reads WDL documents into lossless syntax trees.
type Parser struct {
	maxFileSize int64
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// Parse reads and parses the document at path.
// The returned error is only for I/O failures; syntax problems are reported as
// error diagnostics alongside a tree that still covers the whole file.
func (p *Parser) Parse(path string) (*syntax.Tree, diagnostic.List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.Size() > p.maxFileSize {
		return nil, nil, fmt.Errorf("file %s is %d bytes, exceeds maximum %d bytes", path, info.Size(), p.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tree, diags := Parse(string(data))
	return tree, diags, nil
}

// ParseBytes parses a document held in memory.
func (p *Parser) ParseBytes(data []byte) (*syntax.Tree, diagnostic.List, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, nil, fmt.Errorf("data size %d exceeds maximum %d bytes", len(data), p.maxFileSize)
	}
	tree, diags := Parse(string(data))
	return tree, diags, nil
}

// Parse parses source into a syntax tree. It never fails: unexpected input is
// wrapped in error nodes and reported in the returned diagnostics.
func Parse(source string) (*syntax.Tree, diagnostic.List) {
	g := newGrammar(source)
	g.document()
	return g.b.Finish(), g.diags
}
