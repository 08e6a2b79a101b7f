package imdb

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a dataset for reporting.
type Stats struct {
	TrainSamples int
	TestSamples  int
	Classes      []float32 // Distinct labels, sorted
	MaxTokenID   int32     // Largest id appearing in either split
	MeanLength   float64   // Mean raw review length (tokens, before padding)
	StddevLength float64   // Population-style sample stddev of review length
}

// Summarize computes dataset summary statistics over both splits.
func Summarize(ds *Dataset) Stats {
	lengths := make([]float64, 0, ds.Train.NumSamples()+ds.Test.NumSamples())
	classes := make(map[float32]struct{})
	var maxID int32

	for _, split := range []*Split{&ds.Train, &ds.Test} {
		for _, seq := range split.Sequences {
			lengths = append(lengths, float64(len(seq)))
			for _, id := range seq {
				if id > maxID {
					maxID = id
				}
			}
		}
		for _, label := range split.Labels {
			classes[label] = struct{}{}
		}
	}

	classList := make([]float32, 0, len(classes))
	for c := range classes {
		classList = append(classList, c)
	}
	sort.Slice(classList, func(i, j int) bool { return classList[i] < classList[j] })

	mean, std := stat.MeanStdDev(lengths, nil)

	return Stats{
		TrainSamples: ds.Train.NumSamples(),
		TestSamples:  ds.Test.NumSamples(),
		Classes:      classList,
		MaxTokenID:   maxID,
		MeanLength:   mean,
		StddevLength: std,
	}
}

// Lengths returns the raw review lengths of both splits, for plotting.
func Lengths(ds *Dataset) []float64 {
	lengths := make([]float64, 0, ds.Train.NumSamples()+ds.Test.NumSamples())
	for _, split := range []*Split{&ds.Train, &ds.Test} {
		for _, seq := range split.Sequences {
			lengths = append(lengths, float64(len(seq)))
		}
	}
	return lengths
}
