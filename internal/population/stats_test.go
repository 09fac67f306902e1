package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datasetWithPrices(prices []float64) *Dataset {
	ds := &Dataset{Rows: make([]Row, len(prices))}
	for i, p := range prices {
		ds.Rows[i] = Row{ID: i + 1, Price: p}
	}
	return ds
}

func TestSummarize_Basic(t *testing.T) {
	s := Summarize(datasetWithPrices([]float64{100, 200, 300, 400}))

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 250.0, s.Mean)
	assert.Equal(t, 100.0, s.Min)
	assert.Equal(t, 400.0, s.Max)
	assert.Equal(t, 250.0, s.Median)
	assert.Equal(t, 300.0, s.Spread)
	assert.InDelta(t, 111.80, s.Std, 0.01)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, Summarize(&Dataset{}))
}

func TestSummarize_OddMedian(t *testing.T) {
	s := Summarize(datasetWithPrices([]float64{500, 100, 300}))
	assert.Equal(t, 300.0, s.Median)
}

func TestSummarize_IdenticalPrices(t *testing.T) {
	s := Summarize(datasetWithPrices([]float64{599, 599, 599}))

	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 0.0, s.Spread)
	require.Len(t, s.Histogram, histogramBins)
	assert.Equal(t, 3, s.Histogram[0].Count)
}

func TestSummarize_HistogramCoversAllPrices(t *testing.T) {
	prices := []float64{100, 150, 200, 250, 300, 350, 400, 450, 500, 550, 600}
	s := Summarize(datasetWithPrices(prices))

	require.Len(t, s.Histogram, histogramBins)
	total := 0
	for _, bin := range s.Histogram {
		total += bin.Count
	}
	assert.Equal(t, len(prices), total)

	// Max price lands in the last bin, not beyond it
	assert.GreaterOrEqual(t, s.Histogram[histogramBins-1].Count, 1)
}
