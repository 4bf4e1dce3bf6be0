// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// AggregateOptions represents all possible options to the aggregate()
// function. The write concern only applies to pipelines that write, such as
// those ending in $out or $merge.
type AggregateOptions struct {
	AllowDiskUse   *bool                      // Enables writing to temporary files on the server
	BatchSize      *int32                     // The number of documents to return per batch
	MaxTime        *time.Duration             // The maximum amount of time to allow the operation to run
	ReadPreference *readpref.ReadPref         // The read preference for this aggregate only, overriding the collection default
	WriteConcern   *writeconcern.WriteConcern // The write concern for this aggregate only, overriding the collection default
}

// Aggregate returns a pointer to a new AggregateOptions
func Aggregate() *AggregateOptions {
	return &AggregateOptions{}
}

// SetAllowDiskUse enables writing to temporary files on the server
func (ao *AggregateOptions) SetAllowDiskUse(b bool) *AggregateOptions {
	ao.AllowDiskUse = &b
	return ao
}

// SetBatchSize specifies the number of documents to return per batch
func (ao *AggregateOptions) SetBatchSize(i int32) *AggregateOptions {
	ao.BatchSize = &i
	return ao
}

// SetMaxTime specifies the maximum amount of time to allow the operation to
// run
func (ao *AggregateOptions) SetMaxTime(d time.Duration) *AggregateOptions {
	ao.MaxTime = &d
	return ao
}

// SetReadPreference sets the read preference for this aggregate only.
func (ao *AggregateOptions) SetReadPreference(rp *readpref.ReadPref) *AggregateOptions {
	ao.ReadPreference = rp
	return ao
}

// SetWriteConcern sets the write concern for this aggregate only.
func (ao *AggregateOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *AggregateOptions {
	ao.WriteConcern = wc
	return ao
}

// MergeAggregateOptions combines the argued AggregateOptions into a single AggregateOptions in a last-one-wins
// fashion
func MergeAggregateOptions(opts ...*AggregateOptions) *AggregateOptions {
	aggOpts := Aggregate()
	for _, ao := range opts {
		if ao == nil {
			continue
		}
		if ao.AllowDiskUse != nil {
			aggOpts.AllowDiskUse = ao.AllowDiskUse
		}
		if ao.BatchSize != nil {
			aggOpts.BatchSize = ao.BatchSize
		}
		if ao.MaxTime != nil {
			aggOpts.MaxTime = ao.MaxTime
		}
		if ao.ReadPreference != nil {
			aggOpts.ReadPreference = ao.ReadPreference
		}
		if ao.WriteConcern != nil {
			aggOpts.WriteConcern = ao.WriteConcern
		}
	}

	return aggOpts
}
