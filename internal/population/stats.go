package population

import (
	"math"
	"sort"
)

// histogramBins is the fixed bin count for the price distribution chart.
const histogramBins = 10

// Bin is one bucket of the price histogram.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Summary describes the price distribution of one dataset.
type Summary struct {
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Std       float64 `json:"std"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Median    float64 `json:"median"`
	Spread    float64 `json:"spread"` // max - min
	Histogram []Bin   `json:"histogram"`
}

// Summarize computes distribution statistics for a dataset. An empty dataset
// yields a zero Summary.
func Summarize(ds *Dataset) Summary {
	if ds == nil || len(ds.Rows) == 0 {
		return Summary{}
	}

	prices := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		prices[i] = row.Price
	}
	sort.Float64s(prices)

	n := len(prices)
	min, max := prices[0], prices[n-1]

	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / float64(n)

	var sq float64
	for _, p := range prices {
		d := p - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(n))

	var median float64
	if n%2 == 1 {
		median = prices[n/2]
	} else {
		median = (prices[n/2-1] + prices[n/2]) / 2
	}

	return Summary{
		Count:     n,
		Mean:      round2(mean),
		Std:       round2(std),
		Min:       min,
		Max:       max,
		Median:    round2(median),
		Spread:    round2(max - min),
		Histogram: histogram(prices, min, max),
	}
}

func histogram(sorted []float64, min, max float64) []Bin {
	bins := make([]Bin, histogramBins)
	width := (max - min) / histogramBins
	if width == 0 {
		// All prices identical; everything lands in one bin
		bins[0] = Bin{Low: min, High: max, Count: len(sorted)}
		for i := 1; i < histogramBins; i++ {
			bins[i] = Bin{Low: min, High: max}
		}
		return bins
	}

	for i := range bins {
		bins[i].Low = round2(min + float64(i)*width)
		bins[i].High = round2(min + float64(i+1)*width)
	}
	for _, p := range sorted {
		idx := int((p - min) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
