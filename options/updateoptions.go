// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import "go.mongodb.org/mongo-driver/mongo/writeconcern"

// UpdateOptions represents all possible options to the updateOne() and
// updateMany() functions
type UpdateOptions struct {
	BypassDocumentValidation *bool                      // If true, allows the write to opt-out of document level validation
	Upsert                   *bool                      // If true, insert a new document when no document matches the filter
	WriteConcern             *writeconcern.WriteConcern // The write concern for this update only, overriding the collection default
}

// Update returns a pointer to a new UpdateOptions
func Update() *UpdateOptions {
	return &UpdateOptions{}
}

// SetBypassDocumentValidation allows the write to opt-out of document level
// validation.
func (uo *UpdateOptions) SetBypassDocumentValidation(b bool) *UpdateOptions {
	uo.BypassDocumentValidation = &b
	return uo
}

// SetUpsert specifies whether to insert a new document when no document
// matches the filter
func (uo *UpdateOptions) SetUpsert(b bool) *UpdateOptions {
	uo.Upsert = &b
	return uo
}

// SetWriteConcern sets the write concern for this update only.
func (uo *UpdateOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *UpdateOptions {
	uo.WriteConcern = wc
	return uo
}

// MergeUpdateOptions combines the argued UpdateOptions into a single UpdateOptions in a last-one-wins fashion
func MergeUpdateOptions(opts ...*UpdateOptions) *UpdateOptions {
	uOpts := Update()
	for _, uo := range opts {
		if uo == nil {
			continue
		}
		if uo.BypassDocumentValidation != nil {
			uOpts.BypassDocumentValidation = uo.BypassDocumentValidation
		}
		if uo.Upsert != nil {
			uOpts.Upsert = uo.Upsert
		}
		if uo.WriteConcern != nil {
			uOpts.WriteConcern = uo.WriteConcern
		}
	}

	return uOpts
}

// ReplaceOptions represents all possible options to the replaceOne()
// function
type ReplaceOptions struct {
	BypassDocumentValidation *bool                      // If true, allows the write to opt-out of document level validation
	Upsert                   *bool                      // If true, insert the replacement when no document matches the filter
	WriteConcern             *writeconcern.WriteConcern // The write concern for this replace only, overriding the collection default
}

// Replace returns a pointer to a new ReplaceOptions
func Replace() *ReplaceOptions {
	return &ReplaceOptions{}
}

// SetBypassDocumentValidation allows the write to opt-out of document level
// validation.
func (ro *ReplaceOptions) SetBypassDocumentValidation(b bool) *ReplaceOptions {
	ro.BypassDocumentValidation = &b
	return ro
}

// SetUpsert specifies whether to insert the replacement when no document
// matches the filter
func (ro *ReplaceOptions) SetUpsert(b bool) *ReplaceOptions {
	ro.Upsert = &b
	return ro
}

// SetWriteConcern sets the write concern for this replace only.
func (ro *ReplaceOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *ReplaceOptions {
	ro.WriteConcern = wc
	return ro
}

// MergeReplaceOptions combines the argued ReplaceOptions into a single ReplaceOptions in a last-one-wins fashion
func MergeReplaceOptions(opts ...*ReplaceOptions) *ReplaceOptions {
	rOpts := Replace()
	for _, ro := range opts {
		if ro == nil {
			continue
		}
		if ro.BypassDocumentValidation != nil {
			rOpts.BypassDocumentValidation = ro.BypassDocumentValidation
		}
		if ro.Upsert != nil {
			rOpts.Upsert = ro.Upsert
		}
		if ro.WriteConcern != nil {
			rOpts.WriteConcern = ro.WriteConcern
		}
	}

	return rOpts
}
