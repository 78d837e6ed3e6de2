// Package charts turns flat query results into figure descriptions a chart
// frontend can render directly. It computes values only; drawing is the
// consumer's problem.
package charts

import "time"

// Figure is a renderable chart description.
type Figure struct {
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	Series     []Series  `json:"series,omitempty"`
	Labels     []string  `json:"labels,omitempty"`
	Values     []float64 `json:"values,omitempty"`
	Annotation string    `json:"annotation,omitempty"`
}

// Series is one line or bar group within a figure.
type Series struct {
	Name string      `json:"name"`
	X    []time.Time `json:"x,omitempty"`
	Y    []float64   `json:"y"`
}

// Figure kinds understood by the frontend.
const (
	KindLine      = "line"
	KindPie       = "pie"
	KindBar       = "bar"
	KindHistogram = "histogram"
	KindEmpty     = "empty"
)

// Empty returns the placeholder figure shown when a query has no rows.
func Empty(title string) Figure {
	return Figure{Title: title, Kind: KindEmpty, Annotation: "No data available"}
}

// Point is one dated measurement feeding a trend figure.
type Point struct {
	Date  time.Time
	Value float64
}

// MetricTrend builds a dated value line with a least-squares trend overlay.
// Fewer than two points yields no trend series.
func MetricTrend(title, seriesName string, points []Point) Figure {
	if len(points) == 0 {
		return Empty(title)
	}

	fig := Figure{Title: title, Kind: KindLine}
	x := make([]time.Time, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.Date
		y[i] = p.Value
	}
	fig.Series = append(fig.Series, Series{Name: seriesName, X: x, Y: y})

	if len(points) >= 2 {
		slope, intercept := leastSquares(points)
		trend := make([]float64, len(points))
		for i, p := range points {
			trend[i] = slope*dayIndex(points[0].Date, p.Date) + intercept
		}
		fig.Series = append(fig.Series, Series{Name: "Trend", X: x, Y: trend})
	}
	return fig
}

// leastSquares fits value = slope*days + intercept, with days counted from
// the first point's date.
func leastSquares(points []Point) (slope, intercept float64) {
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := dayIndex(points[0].Date, p.Date)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func dayIndex(origin, t time.Time) float64 {
	return t.Sub(origin).Hours() / 24
}

// Pie builds a labeled pie figure from category counts. Map iteration order
// is not stable, so callers that need a fixed order pass labels explicitly
// via Bars.
func Pie(title string, counts map[string]int) Figure {
	if len(counts) == 0 {
		return Empty(title)
	}
	fig := Figure{Title: title, Kind: KindPie}
	for label, n := range counts {
		fig.Labels = append(fig.Labels, label)
		fig.Values = append(fig.Values, float64(n))
	}
	return fig
}

// Bars builds a bar figure from ordered label/value pairs.
func Bars(title string, labels []string, values []float64) Figure {
	if len(labels) == 0 {
		return Empty(title)
	}
	return Figure{Title: title, Kind: KindBar, Labels: labels, Values: values}
}

// Histogram builds a pre-bucketed histogram figure.
func Histogram(title string, labels []string, counts []int) Figure {
	if len(labels) == 0 {
		return Empty(title)
	}
	values := make([]float64, len(counts))
	for i, n := range counts {
		values[i] = float64(n)
	}
	return Figure{Title: title, Kind: KindHistogram, Labels: labels, Values: values}
}
