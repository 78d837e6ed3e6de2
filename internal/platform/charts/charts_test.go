package charts

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestMetricTrend_Empty(t *testing.T) {
	fig := MetricTrend("Weight", "Weight", nil)
	if fig.Kind != KindEmpty {
		t.Errorf("kind = %q", fig.Kind)
	}
	if fig.Annotation != "No data available" {
		t.Errorf("annotation = %q", fig.Annotation)
	}
}

func TestMetricTrend_SinglePoint(t *testing.T) {
	fig := MetricTrend("Weight", "Weight", []Point{{Date: day(0), Value: 80}})
	if fig.Kind != KindLine {
		t.Errorf("kind = %q", fig.Kind)
	}
	if len(fig.Series) != 1 {
		t.Errorf("single point must not grow a trend series, got %d series", len(fig.Series))
	}
}

func TestMetricTrend_TrendLine(t *testing.T) {
	// value = 2*day + 70, exactly linear
	points := []Point{
		{Date: day(0), Value: 70},
		{Date: day(1), Value: 72},
		{Date: day(2), Value: 74},
		{Date: day(3), Value: 76},
	}
	fig := MetricTrend("Weight", "Weight", points)
	if len(fig.Series) != 2 {
		t.Fatalf("expected data + trend series, got %d", len(fig.Series))
	}
	trend := fig.Series[1]
	if trend.Name != "Trend" {
		t.Errorf("trend name = %q", trend.Name)
	}
	for i, want := range []float64{70, 72, 74, 76} {
		if math.Abs(trend.Y[i]-want) > 1e-9 {
			t.Errorf("trend[%d] = %v, want %v", i, trend.Y[i], want)
		}
	}
}

func TestLeastSquares_FlatSeries(t *testing.T) {
	points := []Point{
		{Date: day(0), Value: 5},
		{Date: day(0), Value: 5},
	}
	slope, intercept := leastSquares(points)
	if slope != 0 || intercept != 5 {
		t.Errorf("slope=%v intercept=%v, want 0 and 5", slope, intercept)
	}
}

func TestPie(t *testing.T) {
	fig := Pie("Gender", map[string]int{"Male": 3, "Female": 4})
	if fig.Kind != KindPie {
		t.Errorf("kind = %q", fig.Kind)
	}
	if len(fig.Labels) != 2 || len(fig.Values) != 2 {
		t.Errorf("labels=%v values=%v", fig.Labels, fig.Values)
	}
	if fig := Pie("Gender", nil); fig.Kind != KindEmpty {
		t.Errorf("empty pie kind = %q", fig.Kind)
	}
}

func TestBars(t *testing.T) {
	fig := Bars("Metric Types", []string{"Weight", "BP"}, []float64{10, 4})
	if fig.Kind != KindBar || len(fig.Values) != 2 {
		t.Errorf("fig = %+v", fig)
	}
	if fig := Bars("Metric Types", nil, nil); fig.Kind != KindEmpty {
		t.Errorf("empty bars kind = %q", fig.Kind)
	}
}

func TestHistogram(t *testing.T) {
	fig := Histogram("Ages", []string{"0-18", "19-35"}, []int{1, 2})
	if fig.Kind != KindHistogram {
		t.Errorf("kind = %q", fig.Kind)
	}
	if fig.Values[1] != 2 {
		t.Errorf("values = %v", fig.Values)
	}
}
