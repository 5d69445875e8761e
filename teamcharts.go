// Package teamcharts turns a list of sports teams into bar and pie charts.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/teamcharts/engine"
//	    "github.com/spektr-org/teamcharts/teams"
//	)
//
//	res, err := engine.Execute(teams.View(list), engine.ChartRequest{
//	    Dimension: engine.DimensionWealth,
//	    Style:     engine.StyleBar,
//	    Canvas:    engine.Size{Width: 600, Height: 400},
//	})
//
// The engine buckets the teams by one dimension and returns render-ready
// geometry: bar rectangles with axis ticks, or pie slices with label anchors
// and a legend for slices too thin to label. It never draws anything itself;
// the render package turns a Result into PNG, SVG or terminal text, and
// cmd/teamcharts wraps the whole pipeline in a CLI.
package teamcharts
