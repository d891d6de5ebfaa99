// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the layout → render flow that both entry points
// run. By centralizing this logic, the CLI and the server apply the same
// defaults, the same validation and the same cache keys.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: compute positions for a gallery with the selected algorithm
//  2. Render: generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Algorithm: "partition",
//	    Width:     1200,
//	    Spacing:   8,
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.GenerateLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridfit/pkg/cache"
	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 1200.0

	// DefaultColumns is the column count used by the columns algorithm.
	DefaultColumns = 3

	// DefaultBackground is the default frame color for rendered output.
	DefaultBackground = "white"

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0
)

// DefaultAlgorithm is the default layout algorithm.
const DefaultAlgorithm = gallery.AlgorithmPartition

// DefaultStyle is the default visual style.
const DefaultStyle = gallery.StyleSimple

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	gallery.StyleSimple:  true,
	gallery.StyleOutline: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Algorithm   string  `json:"algorithm,omitempty"`
	Width       float64 `json:"width,omitempty"`
	MaxHeight   float64 `json:"max_height,omitempty"`
	IdealHeight float64 `json:"ideal_height,omitempty"`
	Spacing     float64 `json:"spacing,omitempty"`
	Align       string  `json:"align,omitempty"`
	Columns     int     `json:"columns,omitempty"`
	Margin      float64 `json:"margin,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Background string   `json:"background,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// MaxPartitionCells caps the partition tables a justified layout may
	// build (see partition.Cells). Zero means no limit.
	MaxPartitionCells int `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// GalleryHash is the content hash of the normalized gallery.
	GalleryHash string

	// Layout contains the computed positions.
	Layout gallery.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	GroupCount   int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid style: %q (must be one of: simple, outline)", style)
	}
	return nil
}

// ValidateAlgorithm checks that a layout algorithm is valid.
func ValidateAlgorithm(algorithm string) error {
	if !gallery.ValidAlgorithm(algorithm) {
		return errs.New(errs.ErrCodeInvalidAlgorithm, "invalid algorithm: %q (must be one of: %s)",
			algorithm, strings.Join(gallery.Algorithms, ", "))
	}
	return nil
}

// ValidateAlign checks that an alignment is valid.
func ValidateAlign(align string) error {
	switch layout.Align(align) {
	case layout.AlignLeft, layout.AlignCenter:
		return nil
	}
	return errs.New(errs.ErrCodeInvalidConfig, "invalid align: %q (must be empty or center)", align)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if err := errs.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errs.ValidateOptionalDimension("max_height", o.MaxHeight); err != nil {
		return err
	}
	if err := errs.ValidateOptionalDimension("ideal_height", o.IdealHeight); err != nil {
		return err
	}
	if err := errs.ValidateSpacing(o.Spacing); err != nil {
		return err
	}
	if err := ValidateAlign(o.Align); err != nil {
		return err
	}
	if o.Columns < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "columns must be positive, got %d", o.Columns)
	}
	if o.Margin < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "margin must not be negative, got %v", o.Margin)
	}
	if 2*o.Margin >= o.Width {
		return errs.New(errs.ErrCodeInvalidConfig, "margin %v leaves no room in width %v", o.Margin, o.Width)
	}
	if o.MaxHeight > 0 && 2*o.Margin >= o.MaxHeight {
		return errs.New(errs.ErrCodeInvalidConfig, "margin %v leaves no room in max_height %v", o.Margin, o.MaxHeight)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "scale must be positive, got %v", o.Scale)
	}
	return nil
}

// LayoutConfig returns the justified layout configuration with the margin
// taken out of the container.
func (o *Options) LayoutConfig() layout.Config {
	cfg := layout.Config{
		MaxWidth:           o.Width - 2*o.Margin,
		IdealElementHeight: o.IdealHeight,
		Spacing:            o.Spacing,
		Align:              layout.Align(o.Align),
	}
	if o.MaxHeight > 0 {
		cfg.MaxHeight = o.MaxHeight - 2*o.Margin
	}
	return cfg
}

// ColumnConfig returns the fixed-column configuration with the margin
// taken out of the container.
func (o *Options) ColumnConfig() layout.ColumnConfig {
	return layout.ColumnConfig{
		MaxWidth:    o.Width - 2*o.Margin,
		ColumnCount: o.Columns,
		Spacing:     o.Spacing,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
// Options the selected algorithm ignores are zeroed so they do not split
// the cache.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Algorithm: o.Algorithm,
		Width:     o.Width,
		Spacing:   o.Spacing,
		Margin:    o.Margin,
	}
	switch o.Algorithm {
	case gallery.AlgorithmColumns:
		k.Columns = o.Columns
	default:
		k.MaxHeight = o.MaxHeight
		k.IdealHeight = o.IdealHeight
		k.Align = o.Align
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Background: o.Background,
		Labels:     o.Labels,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
