package pipeline

import (
	"fmt"

	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/render/sink"
)

// RenderFromLayout generates output artifacts in the requested formats.
// Options must have been validated (ValidateForRender).
func RenderFromLayout(l gallery.Layout, opts Options) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSinkOptions(opts Options) []sink.Option {
	out := []sink.Option{
		sink.WithStyle(opts.Style),
		sink.WithBackground(opts.Background),
		sink.WithScale(opts.Scale),
	}
	if opts.Labels {
		out = append(out, sink.WithLabels())
	}
	return out
}
