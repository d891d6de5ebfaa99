package pipeline

import (
	"slices"

	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/layout"
	"github.com/matzehuels/gridfit/pkg/partition"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the layout of g with the algorithm selected in
// opts. Options must have been validated (ValidateForLayout).
//
// The margin is removed from the container before layout and added back as
// an offset, so the returned frame is the full requested width.
func GenerateLayout(g gallery.Gallery, opts Options) (gallery.Layout, error) {
	g, err := prepareGallery(g)
	if err != nil {
		return gallery.Layout{}, err
	}

	var res layout.Result
	switch opts.Algorithm {
	case gallery.AlgorithmColumns:
		res, err = layout.FixedColumn(g.Sizes(), opts.ColumnConfig())
	case gallery.AlgorithmSingle:
		res, err = layout.SingleRow(g.Sizes(), opts.LayoutConfig())
	default:
		if err = checkPartitionCells(g, opts); err == nil {
			res, err = layout.FixedPartition(g.Sizes(), opts.LayoutConfig())
		}
	}
	if err != nil {
		return gallery.Layout{}, err
	}

	l, err := gallery.FromResult(g, res, opts.Algorithm, opts.Spacing)
	if err != nil {
		return gallery.Layout{}, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("placed elements",
			"algorithm", opts.Algorithm,
			"groups", l.Groups,
			"width", res.Width,
			"height", res.Height)
	}
	return l.WithMargin(opts.Margin), nil
}

// checkPartitionCells rejects galleries whose row estimate would make the
// partition tables larger than opts.MaxPartitionCells.
func checkPartitionCells(g gallery.Gallery, opts Options) error {
	if opts.MaxPartitionCells <= 0 {
		return nil
	}
	cfg := opts.LayoutConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	ratios, err := layout.AspectRatios(g.Sizes())
	if err != nil {
		return err
	}
	rows := layout.RowsNeeded(ratios, cfg)
	if cells := partition.Cells(len(ratios), rows); cells > opts.MaxPartitionCells {
		return errs.New(errs.ErrCodeInvalidInput,
			"%d elements in %d rows exceeds the partition limit of %d cells (lower ideal_height or send fewer elements)",
			len(ratios), rows, opts.MaxPartitionCells)
	}
	return nil
}

// prepareGallery returns a normalized copy of g. The caller's elements are
// never modified.
func prepareGallery(g gallery.Gallery) (gallery.Gallery, error) {
	out := gallery.Gallery{Elements: slices.Clone(g.Elements)}
	if err := out.Normalize(); err != nil {
		return gallery.Gallery{}, err
	}
	return out, nil
}
