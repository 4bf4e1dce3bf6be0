// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import "go.mongodb.org/mongo-driver/mongo/writeconcern"

// DeleteOptions represents all possible options to the deleteOne() and
// deleteMany() functions
type DeleteOptions struct {
	WriteConcern *writeconcern.WriteConcern // The write concern for this delete only, overriding the collection default
}

// Delete returns a pointer to a new DeleteOptions
func Delete() *DeleteOptions {
	return &DeleteOptions{}
}

// SetWriteConcern sets the write concern for this delete only.
func (do *DeleteOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *DeleteOptions {
	do.WriteConcern = wc
	return do
}

// MergeDeleteOptions combines the argued DeleteOptions into a single DeleteOptions in a last-one-wins fashion
func MergeDeleteOptions(opts ...*DeleteOptions) *DeleteOptions {
	dOpts := Delete()
	for _, do := range opts {
		if do == nil {
			continue
		}
		if do.WriteConcern != nil {
			dOpts.WriteConcern = do.WriteConcern
		}
	}

	return dOpts
}
