package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/gallery"
)

// WriteGallery encodes g in format f and writes it to w.
// The output can be re-read with [ReadGallery].
func WriteGallery(g gallery.Gallery, w io.Writer, f Format) error {
	if g.Elements == nil {
		g.Elements = []gallery.Element{}
	}

	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(g)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(g); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(g)
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported manifest format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportGallery writes g to path, choosing the format from the extension.
func ExportGallery(g gallery.Gallery, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGallery(g, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
