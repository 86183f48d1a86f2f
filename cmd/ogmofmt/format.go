package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/ogmo3/doc"
	"github.com/milk9111/ogmo3/level"
	"github.com/milk9111/ogmo3/project"
)

// Kind is the document type of a file, taken from its extension.
type Kind int

const (
	LevelDoc Kind = iota
	ProjectDoc
)

func kindOf(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".ogmo") {
		return ProjectDoc
	}
	return LevelDoc
}

// result is the outcome of formatting one document.
type result struct {
	out []byte
	// changed reports whether out differs from the input text.
	changed bool
}

// format decodes and re-encodes src. It fails if the re-encoded document
// no longer parses to the same tree as src.
func format(src []byte, kind Kind, pretty bool) (result, error) {
	tree, err := doc.Parse(src)
	if err != nil {
		return result{}, err
	}

	var out []byte
	switch kind {
	case ProjectDoc:
		p, err := project.Decode(tree)
		if err != nil {
			return result{}, err
		}
		out, err = p.Encode(pretty)
		if err != nil {
			return result{}, err
		}
	default:
		l, err := level.Decode(tree)
		if err != nil {
			return result{}, err
		}
		out, err = l.Encode(pretty)
		if err != nil {
			return result{}, err
		}
	}
	if pretty {
		out = append(out, '\n')
	}

	again, err := doc.Parse(out)
	if err != nil {
		return result{}, fmt.Errorf("re-encoded document does not parse: %w", err)
	}
	if !doc.Equal(tree, again) {
		return result{}, fmt.Errorf("re-encoded document differs from the input")
	}
	return result{out: out, changed: !bytes.Equal(src, out)}, nil
}

func formatFile(path string, pretty bool) (result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return result{}, fmt.Errorf("ogmofmt: read %s: %w", path, err)
	}
	res, err := format(src, kindOf(path), pretty)
	if err != nil {
		return result{}, fmt.Errorf("ogmofmt: %s: %w", path, err)
	}
	return res, nil
}
