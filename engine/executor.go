package engine

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ============================================================================
// EXECUTOR — Request dispatcher
// ============================================================================
// Entry point: Execute(view, req, opts...)
//
// Pipeline:
//   1. Apply request filters → SubView
//   2. Bucket by the request dimension
//   3. Zero total → StateNoData, stop
//   4. Lay out bars or pie for the request canvas
//   5. (Optional) detail table
//   6. Summary reply
//
// Recoverable layout conditions land in Result.Errors; the returned error is
// reserved for requests that cannot be executed at all.
// ============================================================================

// Canvas defaults used when the request leaves Canvas zero.
const (
	DefaultCanvasWidth  = 600.0
	DefaultCanvasHeight = 400.0
	DefaultLabelBand    = 20.0

	pieCanvasRatio = 0.8
	pieTopMargin   = 20.0
)

// Execute computes the render-ready result for req against view.
func Execute(view RecordView, req ChartRequest, opts ...Option) (*Result, error) {
	if view == nil {
		return nil, errors.New("engine: nil record view")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	filtered := ApplyFilters(view, req.Filters)
	cfg.Logger.Debug("executing chart request",
		zap.Stringer("dimension", req.Dimension),
		zap.Stringer("style", req.Style),
		zap.Int("records", view.Len()),
		zap.Int("filtered", filtered.Len()),
	)

	ds := aggregate(filtered, req.Dimension, cfg)
	res := &Result{
		Title:   req.Dimension.Title(),
		Request: req,
		Dataset: ds,
	}

	if ds.IsEmpty() {
		res.State = StateNoData
		res.Reply = noDataReply(view, filtered)
		res.Errors = append(res.Errors, chartErrorf(EmptyDataset, "total is %d", ds.Total).Error())
		cfg.Logger.Info("no data to chart", zap.Stringer("dimension", req.Dimension))
		return res, nil
	}

	canvas := req.CanvasSize()
	switch req.Style {
	case StyleBar:
		geo, err := layoutBars(ds, canvas.Width, canvas.Height, DefaultLabelBand, cfg)
		res.Bar = geo
		res.Errors = appendLayoutError(res.Errors, err, cfg.Logger)
	case StylePie:
		center, radius := PieFrame(canvas)
		geo, err := layoutPie(ds, center, radius, cfg)
		res.Pie = geo
		res.Errors = appendLayoutError(res.Errors, err, cfg.Logger)
	}

	if req.ShowTable {
		res.Table = BuildTable(req, ds)
	}
	res.Reply = BuildSummary(req.Dimension, ds)
	res.State = StateReady
	return res, nil
}

// PieFrame places the pie in the canvas: diameter 80% of the shorter side,
// horizontally centered, 20 units below the top edge.
func PieFrame(canvas Size) (Pos, float64) {
	size := math.Min(canvas.Width*pieCanvasRatio, canvas.Height*pieCanvasRatio)
	if size < 0 {
		size = 0
	}
	return Pos{X: canvas.Width / 2, Y: size/2 + pieTopMargin}, size / 2
}

// CanvasSize returns the request canvas, or the default canvas when unset.
func (r ChartRequest) CanvasSize() Size {
	if r.Canvas.Width <= 0 && r.Canvas.Height <= 0 {
		return Size{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
	}
	return r.Canvas
}

func validateRequest(req ChartRequest) error {
	switch req.Dimension {
	case DimensionWealth, DimensionSupporters, DimensionLocation, DimensionLeague, DimensionFoundYear:
	default:
		return fmt.Errorf("engine: unsupported dimension %s", req.Dimension)
	}
	switch req.Style {
	case StyleBar, StylePie:
	default:
		return fmt.Errorf("engine: unsupported style %s", req.Style)
	}
	return nil
}

func appendLayoutError(list []string, err error, log *zap.Logger) []string {
	if err == nil {
		return list
	}
	log.Warn("layout degraded", zap.Error(err))
	return append(list, err.Error())
}

func noDataReply(view, filtered RecordView) string {
	if view.Len() > 0 && filtered.Len() == 0 {
		return "No teams match the selected filters. Try broadening your search."
	}
	return NoDataReply
}
