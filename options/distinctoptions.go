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

// DistinctOptions represents all possible options to the distinct() function
type DistinctOptions struct {
	MaxTime        *time.Duration     // The maximum amount of time to allow the operation to run
	ReadPreference *readpref.ReadPref // The read preference for this distinct only, overriding the collection default
}

// Distinct returns a pointer to a new DistinctOptions
func Distinct() *DistinctOptions {
	return &DistinctOptions{}
}

// SetMaxTime specifies the maximum amount of time to allow the operation to
// run
func (do *DistinctOptions) SetMaxTime(d time.Duration) *DistinctOptions {
	do.MaxTime = &d
	return do
}

// SetReadPreference sets the read preference for this distinct only.
func (do *DistinctOptions) SetReadPreference(rp *readpref.ReadPref) *DistinctOptions {
	do.ReadPreference = rp
	return do
}

// MergeDistinctOptions combines the argued DistinctOptions into a single DistinctOptions in a last-one-wins fashion
func MergeDistinctOptions(opts ...*DistinctOptions) *DistinctOptions {
	dOpts := Distinct()
	for _, do := range opts {
		if do == nil {
			continue
		}
		if do.MaxTime != nil {
			dOpts.MaxTime = do.MaxTime
		}
		if do.ReadPreference != nil {
			dOpts.ReadPreference = do.ReadPreference
		}
	}

	return dOpts
}
