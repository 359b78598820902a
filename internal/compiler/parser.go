// Package compiler turns script sources into a domain.Script.
//
// Two source formats are accepted: the line-oriented MDL text format and a
// structured YAML/JSON document. The format is chosen from the file extension.
package compiler

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
)

// Parser is responsible for converting raw bytes into a Script.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Format of a script source.
type Format string

const (
	FormatMDL      Format = "mdl"
	FormatDocument Format = "document"
)

// FormatOf picks the source format from a file name.
// .yaml, .yml and .json are documents; anything else is MDL.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return FormatDocument
	default:
		return FormatMDL
	}
}

// Parse decodes data in the given format. name labels the resulting script.
func (p *Parser) Parse(data []byte, name string, format Format) (*domain.Script, error) {
	var (
		script *domain.Script
		err    error
	)
	switch format {
	case FormatDocument:
		script, err = parseDocument(data)
	case FormatMDL, "":
		script, err = parseMDL(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown script format %q", format)
	}
	if err != nil {
		return nil, err
	}
	script.Name = name
	return script, nil
}

// ParseFile reads and parses the script at path.
func (p *Parser) ParseFile(path string) (*domain.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return p.Parse(data, filepath.Base(path), FormatOf(path))
}
