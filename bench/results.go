// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bench

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

// Result is one timed trial of a case.
type Result struct {
	Duration   time.Duration
	Iterations int
	Error      error
}

// CaseResult aggregates the trials of one case.
type CaseResult struct {
	Name       string
	Trials     int
	Duration   time.Duration
	Raw        []Result
	DataSize   int
	Operations int
	hasErrors  *bool
}

// Summary is the statistical digest of a case run.
type Summary struct {
	Name          string
	Trials        int
	TotalSeconds  float64
	MedianSeconds float64
	MinSeconds    float64
	MaxSeconds    float64
	P90Seconds    float64
	OpsPerSecond  float64
	MBPerSecond   float64
}

// Summarize reduces the raw trials to a Summary. It fails when the case
// recorded no trials.
func (r *CaseResult) Summarize() (Summary, error) {
	timings := r.timings()

	median, err := stats.Median(timings)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(timings)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(timings)
	if err != nil {
		return Summary{}, err
	}
	p90, err := stats.Percentile(timings, 90)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		Name:          r.Name,
		Trials:        r.Trials,
		TotalSeconds:  r.Duration.Round(time.Millisecond).Seconds(),
		MedianSeconds: median,
		MinSeconds:    min,
		MaxSeconds:    max,
		P90Seconds:    p90,
		OpsPerSecond:  r.throughput(median),
	}
	if r.DataSize > 0 {
		out.MBPerSecond = float64(r.DataSize) / median / (1 << 20)
	}
	return out, nil
}

func (s Summary) String() string {
	return fmt.Sprintf("name=%s, trials=%d, median=%.4fs, ops/s=%.1f, MB/s=%.2f",
		s.Name, s.Trials, s.MedianSeconds, s.OpsPerSecond, s.MBPerSecond)
}

func (r *CaseResult) timings() []float64 {
	out := []float64{}
	for _, r := range r.Raw {
		out = append(out, r.Duration.Seconds())
	}
	return out
}

func (r *CaseResult) throughput(seconds float64) float64 {
	if seconds == 0 {
		return 0
	}
	return float64(r.Operations) / seconds
}

func (r *CaseResult) String() string {
	return fmt.Sprintf("name=%s, trials=%d, secs=%s", r.Name, r.Trials, r.Duration)
}

// HasErrors reports whether any trial failed.
func (r *CaseResult) HasErrors() bool {
	if r.hasErrors == nil {
		var val bool
		for _, res := range r.Raw {
			if res.Error != nil {
				val = true
				break
			}
		}
		r.hasErrors = &val
	}

	return *r.hasErrors
}

// ErrReport collects the error strings of failed trials.
func (r *CaseResult) ErrReport() []string {
	errs := []string{}
	for _, res := range r.Raw {
		if res.Error != nil {
			errs = append(errs, res.Error.Error())
		}
	}
	return errs
}
