// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import "go.mongodb.org/mongo-driver/mongo/writeconcern"

// InsertOneOptions represents all possible options to the insertOne()
type InsertOneOptions struct {
	BypassDocumentValidation *bool                      // If true, allows the write to opt-out of document level validation
	WriteConcern             *writeconcern.WriteConcern // The write concern for this insert only, overriding the collection default
}

// InsertOne returns a pointer to a new InsertOneOptions
func InsertOne() *InsertOneOptions {
	return &InsertOneOptions{}
}

// SetBypassDocumentValidation allows the write to opt-out of document level
// validation.
func (ioo *InsertOneOptions) SetBypassDocumentValidation(b bool) *InsertOneOptions {
	ioo.BypassDocumentValidation = &b
	return ioo
}

// SetWriteConcern sets the write concern for this insert only.
func (ioo *InsertOneOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *InsertOneOptions {
	ioo.WriteConcern = wc
	return ioo
}

// MergeInsertOneOptions combines the argued InsertOneOptions into a single InsertOneOptions in a last-one-wins
// fashion
func MergeInsertOneOptions(opts ...*InsertOneOptions) *InsertOneOptions {
	ioOpts := InsertOne()
	for _, ioo := range opts {
		if ioo == nil {
			continue
		}
		if ioo.BypassDocumentValidation != nil {
			ioOpts.BypassDocumentValidation = ioo.BypassDocumentValidation
		}
		if ioo.WriteConcern != nil {
			ioOpts.WriteConcern = ioo.WriteConcern
		}
	}

	return ioOpts
}

// InsertManyOptions represents all possible options to the insertMany()
type InsertManyOptions struct {
	BypassDocumentValidation *bool                      // If true, allows the write to opt-out of document level validation
	Ordered                  *bool                      // If true, stop at the first failed insert; if false, attempt the remaining inserts too
	WriteConcern             *writeconcern.WriteConcern // The write concern for this insert only, overriding the collection default
}

// InsertMany returns a pointer to a new InsertManyOptions
func InsertMany() *InsertManyOptions {
	return &InsertManyOptions{}
}

// SetBypassDocumentValidation allows the write to opt-out of document level
// validation.
func (imo *InsertManyOptions) SetBypassDocumentValidation(b bool) *InsertManyOptions {
	imo.BypassDocumentValidation = &b
	return imo
}

// SetOrdered sets whether to continue performing remaining writes when an
// insert fails
func (imo *InsertManyOptions) SetOrdered(b bool) *InsertManyOptions {
	imo.Ordered = &b
	return imo
}

// SetWriteConcern sets the write concern for this insert only.
func (imo *InsertManyOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *InsertManyOptions {
	imo.WriteConcern = wc
	return imo
}

// MergeInsertManyOptions combines the argued InsertManyOptions into a single InsertManyOptions in a last-one-wins
// fashion
func MergeInsertManyOptions(opts ...*InsertManyOptions) *InsertManyOptions {
	imOpts := InsertMany()
	for _, imo := range opts {
		if imo == nil {
			continue
		}
		if imo.BypassDocumentValidation != nil {
			imOpts.BypassDocumentValidation = imo.BypassDocumentValidation
		}
		if imo.Ordered != nil {
			imOpts.Ordered = imo.Ordered
		}
		if imo.WriteConcern != nil {
			imOpts.WriteConcern = imo.WriteConcern
		}
	}

	return imOpts
}
