package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/matzehuels/gridfit/pkg/buildinfo"
	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/gallery"
	"github.com/matzehuels/gridfit/pkg/partition"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// CacheHeader reports whether a response came from the cache.
const CacheHeader = "X-Cache"

// =============================================================================
// Request and Response Types
// =============================================================================

// GalleryRequest is the body of layout and render requests.
type GalleryRequest struct {
	Elements []gallery.Element `json:"elements"`
	Options  pipeline.Options  `json:"options"`
}

// PartitionRequest is the body of a partition request.
type PartitionRequest struct {
	Weights []float64 `json:"weights"`
	K       int       `json:"k"`
}

// PartitionResponse is the result of a partition request.
type PartitionResponse struct {
	Groups [][]float64      `json:"groups"`
	Ranges []partitionRange `json:"ranges"`
	MaxSum float64          `json:"max_sum"`
}

type partitionRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Date:    buildinfo.Date,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.decodeGallery(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	g, opts, err := s.decodeGallery(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	setCacheHeader(w, res.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	var req PartitionRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.checkCount(len(req.Weights)); err != nil {
		s.fail(w, r, err)
		return
	}
	for i, v := range req.Weights {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			s.fail(w, r, errs.New(errs.ErrCodeInvalidInput, "weight %d must be finite and non-negative, got %v", i, v))
			return
		}
	}

	if cells := partition.Cells(len(req.Weights), req.K); cells > s.opts.MaxPartitionCells {
		s.fail(w, r, errs.New(errs.ErrCodeInvalidInput,
			"%d weights in %d groups exceeds the partition limit of %d cells", len(req.Weights), req.K, s.opts.MaxPartitionCells))
		return
	}

	ranges := partition.Ranges(req.Weights, req.K)
	resp := PartitionResponse{
		Groups: make([][]float64, len(ranges)),
		Ranges: make([]partitionRange, len(ranges)),
	}
	for i, rg := range ranges {
		resp.Groups[i] = req.Weights[rg.Start:rg.End]
		resp.Ranges[i] = partitionRange{Start: rg.Start, End: rg.End}
	}
	resp.MaxSum = partition.MaxSum(resp.Groups)
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// decodeGallery reads a GalleryRequest. Options start from the server
// defaults and are overridden by whatever the request sets.
func (s *Server) decodeGallery(w http.ResponseWriter, r *http.Request) (gallery.Gallery, pipeline.Options, error) {
	req := GalleryRequest{Options: s.defaults}
	if err := decodeBody(w, r, &req); err != nil {
		return gallery.Gallery{}, pipeline.Options{}, err
	}
	if err := s.checkCount(len(req.Elements)); err != nil {
		return gallery.Gallery{}, pipeline.Options{}, err
	}
	req.Options.Logger = s.logger
	req.Options.MaxPartitionCells = s.opts.MaxPartitionCells
	return gallery.Gallery{Elements: req.Elements}, req.Options, nil
}

func (s *Server) checkCount(n int) error {
	if n > s.opts.MaxElements {
		return errs.New(errs.ErrCodeInvalidInput, "request has %d elements, limit is %d", n, s.opts.MaxElements)
	}
	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(CacheHeader, "HIT")
	} else {
		w.Header().Set(CacheHeader, "MISS")
	}
}
