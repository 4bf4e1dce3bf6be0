// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CountOptions represents all possible options to the countDocuments()
// function
type CountOptions struct {
	Limit          *int64             // The maximum number of documents to count
	MaxTime        *time.Duration     // The maximum amount of time to allow the operation to run
	ReadPreference *readpref.ReadPref // The read preference for this count only, overriding the collection default
	Skip           *int64             // The number of documents to skip before counting
}

// Count returns a pointer to a new CountOptions
func Count() *CountOptions {
	return &CountOptions{}
}

// SetLimit specifies the maximum number of documents to count
func (co *CountOptions) SetLimit(i int64) *CountOptions {
	co.Limit = &i
	return co
}

// SetMaxTime specifies the maximum amount of time to allow the operation to
// run
func (co *CountOptions) SetMaxTime(d time.Duration) *CountOptions {
	co.MaxTime = &d
	return co
}

// SetReadPreference sets the read preference for this count only.
func (co *CountOptions) SetReadPreference(rp *readpref.ReadPref) *CountOptions {
	co.ReadPreference = rp
	return co
}

// SetSkip specifies the number of documents to skip before counting
func (co *CountOptions) SetSkip(i int64) *CountOptions {
	co.Skip = &i
	return co
}

// MergeCountOptions combines the argued CountOptions into a single CountOptions in a last-one-wins fashion
func MergeCountOptions(opts ...*CountOptions) *CountOptions {
	countOpts := Count()
	for _, co := range opts {
		if co == nil {
			continue
		}
		if co.Limit != nil {
			countOpts.Limit = co.Limit
		}
		if co.MaxTime != nil {
			countOpts.MaxTime = co.MaxTime
		}
		if co.ReadPreference != nil {
			countOpts.ReadPreference = co.ReadPreference
		}
		if co.Skip != nil {
			countOpts.Skip = co.Skip
		}
	}

	return countOpts
}

// EstimatedDocumentCountOptions represents all possible options to the
// estimatedDocumentCount() function
type EstimatedDocumentCountOptions struct {
	MaxTime        *time.Duration     // The maximum amount of time to allow the operation to run
	ReadPreference *readpref.ReadPref // The read preference for this count only, overriding the collection default
}

// EstimatedDocumentCount returns a pointer to a new
// EstimatedDocumentCountOptions
func EstimatedDocumentCount() *EstimatedDocumentCountOptions {
	return &EstimatedDocumentCountOptions{}
}

// SetMaxTime specifies the maximum amount of time to allow the operation to
// run
func (eco *EstimatedDocumentCountOptions) SetMaxTime(d time.Duration) *EstimatedDocumentCountOptions {
	eco.MaxTime = &d
	return eco
}

// SetReadPreference sets the read preference for this count only.
func (eco *EstimatedDocumentCountOptions) SetReadPreference(rp *readpref.ReadPref) *EstimatedDocumentCountOptions {
	eco.ReadPreference = rp
	return eco
}

// MergeEstimatedDocumentCountOptions combines the argued EstimatedDocumentCountOptions into a single
// EstimatedDocumentCountOptions in a last-one-wins fashion
func MergeEstimatedDocumentCountOptions(opts ...*EstimatedDocumentCountOptions) *EstimatedDocumentCountOptions {
	ecOpts := EstimatedDocumentCount()
	for _, eco := range opts {
		if eco == nil {
			continue
		}
		if eco.MaxTime != nil {
			ecOpts.MaxTime = eco.MaxTime
		}
		if eco.ReadPreference != nil {
			ecOpts.ReadPreference = eco.ReadPreference
		}
	}

	return ecOpts
}
