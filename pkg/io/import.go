package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/gallery"
)

// ReadGallery decodes a manifest from r and normalizes it.
//
// ReadGallery returns an error if the input cannot be decoded in format f,
// if two elements share an ID, or if an element has a non-positive size.
// It does not close r.
func ReadGallery(r io.Reader, f Format) (gallery.Gallery, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return gallery.Gallery{}, fmt.Errorf("read: %w", err)
	}

	var g gallery.Gallery
	switch f {
	case FormatJSON:
		g, err = decodeJSON(data)
	case FormatYAML:
		g, err = decodeYAML(data)
	case FormatTOML:
		g, err = decodeTOML(data)
	default:
		return gallery.Gallery{}, errs.New(errs.ErrCodeInvalidFormat, "unsupported manifest format %q", f)
	}
	if err != nil {
		return gallery.Gallery{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode %s manifest", f)
	}

	if err := g.Normalize(); err != nil {
		return gallery.Gallery{}, err
	}
	return g, nil
}

// ImportGallery reads the manifest at path. The format is chosen from the
// file extension.
func ImportGallery(path string) (gallery.Gallery, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return gallery.Gallery{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return gallery.Gallery{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "manifest %s not found", path)
		}
		return gallery.Gallery{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	g, err := ReadGallery(file, f)
	if err != nil {
		return gallery.Gallery{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func decodeJSON(data []byte) (gallery.Gallery, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return gallery.Gallery{}, nil
	}
	if trimmed[0] == '[' {
		var elems []gallery.Element
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return gallery.Gallery{}, err
		}
		return gallery.Gallery{Elements: elems}, nil
	}
	var g gallery.Gallery
	if err := json.Unmarshal(trimmed, &g); err != nil {
		return gallery.Gallery{}, err
	}
	return g, nil
}

func decodeYAML(data []byte) (gallery.Gallery, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return gallery.Gallery{}, err
	}
	if len(doc.Content) == 0 {
		return gallery.Gallery{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var elems []gallery.Element
		if err := root.Decode(&elems); err != nil {
			return gallery.Gallery{}, err
		}
		return gallery.Gallery{Elements: elems}, nil
	}
	var g gallery.Gallery
	if err := root.Decode(&g); err != nil {
		return gallery.Gallery{}, err
	}
	return g, nil
}

func decodeTOML(data []byte) (gallery.Gallery, error) {
	var g gallery.Gallery
	md, err := toml.Decode(string(data), &g)
	if err != nil {
		return gallery.Gallery{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return gallery.Gallery{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return g, nil
}
