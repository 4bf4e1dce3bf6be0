// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bench measures the wrapper's operation throughput against a
// live deployment.
package bench

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	ExecutionTimeout = 5 * time.Minute
	StandardRuntime  = time.Minute
	MinimumRuntime   = 10 * time.Second
	MinIterations    = 100

	ten         = 10
	hundred     = ten * ten
	thousand    = ten * hundred
	tenThousand = ten * thousand
)

// TimerManager is the subset of testing.B used to exclude setup work from
// a measured run.
type TimerManager interface {
	ResetTimer()
	StartTimer()
	StopTimer()
}

type BenchCase func(context.Context, TimerManager, int) error
type BenchFunction func(*testing.B)

// WrapCase adapts a BenchCase to the standard benchmark runner.
func WrapCase(bench BenchCase) BenchFunction {
	name := getName(bench)
	return func(b *testing.B) {
		ctx := context.Background()
		b.ResetTimer()
		err := bench(ctx, b, b.N)
		require.NoError(b, err, "case='%s'", name)
	}
}

// CaseDefinition binds a case to its workload size and target runtime. It
// doubles as the TimerManager handed to the case so that setup work is
// excluded from the recorded trial duration.
type CaseDefinition struct {
	Bench   BenchCase
	Count   int
	Size    int
	Runtime time.Duration

	runStart   time.Time
	trialStart time.Time
	elapsed    time.Duration
}

// ResetTimer discards time measured so far in the current trial.
func (c *CaseDefinition) ResetTimer() {
	c.trialStart = time.Now()
	c.elapsed = 0
}

// StartTimer resumes measuring the current trial.
func (c *CaseDefinition) StartTimer() {
	c.trialStart = time.Now()
}

// StopTimer pauses measuring the current trial.
func (c *CaseDefinition) StopTimer() {
	c.elapsed += time.Since(c.trialStart)
}

// Run executes the case repeatedly until the target runtime and minimum
// trial count are both met, or the context expires.
func (c *CaseDefinition) Run(ctx context.Context) *CaseResult {
	out := &CaseResult{
		DataSize:   c.Size,
		Name:       c.Name(),
		Operations: c.Count,
	}
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, ExecutionTimeout)
	defer cancel()

	fmt.Println("=== RUN", out.Name)
	if c.Runtime == 0 {
		c.Runtime = StandardRuntime
	}
	c.runStart = time.Now()
	for {
		if time.Since(c.runStart) > c.Runtime {
			if out.Trials >= MinIterations {
				break
			} else if ctx.Err() != nil {
				break
			}
		}

		res := Result{
			Iterations: c.Count,
		}
		c.trialStart = time.Now()
		c.elapsed = 0
		res.Error = c.Bench(ctx, c, c.Count)
		if c.elapsed > 0 {
			res.Duration = c.elapsed
		} else {
			res.Duration = time.Since(c.trialStart)
		}

		if res.Error == context.Canceled {
			break
		}

		out.Trials++
		out.Raw = append(out.Raw, res)
	}
	out.Duration = time.Since(c.runStart)
	if out.HasErrors() {
		fmt.Printf("--- FAIL: %s (%s)\n", out.Name, out.Duration.Round(time.Millisecond))
	} else {
		fmt.Printf("--- PASS: %s (%s)\n", out.Name, out.Duration.Round(time.Millisecond))
	}

	return out
}

func (c *CaseDefinition) String() string {
	return fmt.Sprintf("name=%s, count=%d, runtime=%s timeout=%s",
		c.Name(), c.Count, c.Runtime, ExecutionTimeout)
}

func (c *CaseDefinition) Name() string { return getName(c.Bench) }

func getName(i interface{}) string {
	n := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	parts := strings.Split(n, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}

	return n
}

// AllCases returns the full suite.
func AllCases() []*CaseDefinition {
	return []*CaseDefinition{
		{
			Bench:   SmallDocInsertOne,
			Count:   thousand,
			Size:    thousand * smallDocSize,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   SmallDocInsertOneUnacked,
			Count:   thousand,
			Size:    thousand * smallDocSize,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   LargeDocInsertMany,
			Count:   hundred,
			Size:    hundred * largeDocSize,
			Runtime: MinimumRuntime,
		},
		{
			Bench:   FindManyCursor,
			Count:   tenThousand,
			Size:    tenThousand * smallDocSize,
			Runtime: StandardRuntime,
		},
	}
}
