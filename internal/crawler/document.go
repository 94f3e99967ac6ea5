package crawler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// Document is an annotated element tree.
type Document struct {
	// Base is the document URI. It is the subject of top-level statements
	// and resolves relative references. An empty base makes the document
	// subject a blank node.
	Base string  `yaml:"base,omitempty" json:"base,omitempty"`
	Root Element `yaml:"root" json:"root"`
}

// Element is one node of the document tree. Attribute fields left empty are
// treated as absent.
type Element struct {
	Name     string            `yaml:"name,omitempty" json:"name,omitempty"`
	Prefixes map[string]string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`

	About    string `yaml:"about,omitempty" json:"about,omitempty"`
	Src      string `yaml:"src,omitempty" json:"src,omitempty"`
	Resource string `yaml:"resource,omitempty" json:"resource,omitempty"`
	Href     string `yaml:"href,omitempty" json:"href,omitempty"`
	Rel      string `yaml:"rel,omitempty" json:"rel,omitempty"`
	Rev      string `yaml:"rev,omitempty" json:"rev,omitempty"`
	Property string `yaml:"property,omitempty" json:"property,omitempty"`
	Typeof   string `yaml:"typeof,omitempty" json:"typeof,omitempty"`
	Content  string `yaml:"content,omitempty" json:"content,omitempty"`

	Text     string    `yaml:"text,omitempty" json:"text,omitempty"`
	Children []Element `yaml:"children,omitempty" json:"children,omitempty"`
}

// Error codes for document loading failures.
const (
	ErrCodeRead        = "READ_FAILED"
	ErrCodeParse       = "PARSE_FAILED"
	ErrCodeUnsupported = "UNSUPPORTED_FORMAT"
)

// ParseError reports a document that could not be loaded.
type ParseError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ParseYAML decodes a YAML document. Unknown fields are rejected.
func ParseYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding YAML: %v", err)}
	}
	return &doc, nil
}

// ParseCUE evaluates a CUE document and decodes the concrete result. filename
// is used in error positions only.
func ParseCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueError("compiling CUE", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError("validating CUE", err)
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, cueError("decoding CUE", err)
	}
	return &doc, nil
}

func cueError(what string, err error) *ParseError {
	pe := &ParseError{Code: ErrCodeParse, Message: fmt.Sprintf("%s: %v", what, err)}
	if pos := cueerrors.Positions(err); len(pos) > 0 {
		pe.Pos = pos[0]
	}
	return pe
}

// LoadFile reads a document, choosing the parser by extension: .yaml and .yml
// for YAML, .cue for CUE.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Code: ErrCodeRead, Message: err.Error()}
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, path)
	default:
		return nil, &ParseError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported document extension %q (want .yaml, .yml or .cue)", ext),
		}
	}
}
