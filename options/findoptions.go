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

	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
)

// FindOptions represents all possible options to the find() function
type FindOptions struct {
	BatchSize      *int32             // The number of documents to return per batch
	Limit          *int64             // The maximum number of documents to return
	MaxAwaitTime   *time.Duration     // The maximum amount of time for the server to wait on new documents to satisfy a tailable cursor query
	MaxTime        *time.Duration     // The maximum amount of time to allow the query to run
	Projection     interface{}        // Limits the fields returned for all documents
	ReadPreference *readpref.ReadPref // The read preference for this find only, overriding the collection default
	Skip           *int64             // The number of documents to skip before returning
	Sort           interface{}        // The order in which to return results
}

// Find returns a pointer to a new FindOptions
func Find() *FindOptions {
	return &FindOptions{}
}

// SetBatchSize specifies the number of documents to return per batch
func (f *FindOptions) SetBatchSize(i int32) *FindOptions {
	f.BatchSize = &i
	return f
}

// SetLimit specifies a limit on the number of results
func (f *FindOptions) SetLimit(i int64) *FindOptions {
	f.Limit = &i
	return f
}

// SetMaxAwaitTime specifies the max amount of time for the server to wait on
// new documents to satisfy a tailable cursor query
func (f *FindOptions) SetMaxAwaitTime(d time.Duration) *FindOptions {
	f.MaxAwaitTime = &d
	return f
}

// SetMaxTime specifies the max amount of time to allow the query to run
func (f *FindOptions) SetMaxTime(d time.Duration) *FindOptions {
	f.MaxTime = &d
	return f
}

// SetProjection limits the fields returned for all documents
func (f *FindOptions) SetProjection(projection interface{}) *FindOptions {
	f.Projection = projection
	return f
}

// SetReadPreference sets the read preference for this find only.
func (f *FindOptions) SetReadPreference(rp *readpref.ReadPref) *FindOptions {
	f.ReadPreference = rp
	return f
}

// SetSkip specifies the number of documents to skip before returning
func (f *FindOptions) SetSkip(i int64) *FindOptions {
	f.Skip = &i
	return f
}

// SetSort specifies the order in which to return documents
func (f *FindOptions) SetSort(sort interface{}) *FindOptions {
	f.Sort = sort
	return f
}

// MergeFindOptions combines the argued FindOptions into a single FindOptions in a last-one-wins fashion
func MergeFindOptions(opts ...*FindOptions) *FindOptions {
	fo := Find()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.BatchSize != nil {
			fo.BatchSize = opt.BatchSize
		}
		if opt.Limit != nil {
			fo.Limit = opt.Limit
		}
		if opt.MaxAwaitTime != nil {
			fo.MaxAwaitTime = opt.MaxAwaitTime
		}
		if opt.MaxTime != nil {
			fo.MaxTime = opt.MaxTime
		}
		if opt.Projection != nil {
			fo.Projection = opt.Projection
		}
		if opt.ReadPreference != nil {
			fo.ReadPreference = opt.ReadPreference
		}
		if opt.Skip != nil {
			fo.Skip = opt.Skip
		}
		if opt.Sort != nil {
			fo.Sort = opt.Sort
		}
	}

	return fo
}

// FindOneOptions represents all possible options to the findOne() function
type FindOneOptions struct {
	MaxTime        *time.Duration     // The maximum amount of time to allow the query to run
	Projection     interface{}        // Limits the fields returned for the document
	ReadPreference *readpref.ReadPref // The read preference for this find only, overriding the collection default
	Skip           *int64             // The number of documents to skip before returning
	Sort           interface{}        // The order in which to return results
}

// FindOne returns a pointer to a new FindOneOptions
func FindOne() *FindOneOptions {
	return &FindOneOptions{}
}

// SetMaxTime specifies the max amount of time to allow the query to run
func (f *FindOneOptions) SetMaxTime(d time.Duration) *FindOneOptions {
	f.MaxTime = &d
	return f
}

// SetProjection limits the fields returned for the document
func (f *FindOneOptions) SetProjection(projection interface{}) *FindOneOptions {
	f.Projection = projection
	return f
}

// SetReadPreference sets the read preference for this find only.
func (f *FindOneOptions) SetReadPreference(rp *readpref.ReadPref) *FindOneOptions {
	f.ReadPreference = rp
	return f
}

// SetSkip specifies the number of documents to skip before returning
func (f *FindOneOptions) SetSkip(i int64) *FindOneOptions {
	f.Skip = &i
	return f
}

// SetSort specifies the order of the returned documents
func (f *FindOneOptions) SetSort(sort interface{}) *FindOneOptions {
	f.Sort = sort
	return f
}

// MergeFindOneOptions combines the argued FindOneOptions into a single FindOneOptions in a last-one-wins fashion
func MergeFindOneOptions(opts ...*FindOneOptions) *FindOneOptions {
	fo := FindOne()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.MaxTime != nil {
			fo.MaxTime = opt.MaxTime
		}
		if opt.Projection != nil {
			fo.Projection = opt.Projection
		}
		if opt.ReadPreference != nil {
			fo.ReadPreference = opt.ReadPreference
		}
		if opt.Skip != nil {
			fo.Skip = opt.Skip
		}
		if opt.Sort != nil {
			fo.Sort = opt.Sort
		}
	}

	return fo
}

// FindOneAndDeleteOptions represents all possible options to the
// findOneAndDelete() function
type FindOneAndDeleteOptions struct {
	MaxTime      *time.Duration             // The maximum amount of time to allow the operation to run
	Projection   interface{}                // Limits the fields returned for the document
	Sort         interface{}                // Determines which document is deleted when the filter matches several
	WriteConcern *writeconcern.WriteConcern // The write concern for this operation only, overriding the collection default
}

// FindOneAndDelete returns a pointer to a new FindOneAndDeleteOptions
func FindOneAndDelete() *FindOneAndDeleteOptions {
	return &FindOneAndDeleteOptions{}
}

// SetMaxTime specifies the max amount of time to allow the operation to run
func (f *FindOneAndDeleteOptions) SetMaxTime(d time.Duration) *FindOneAndDeleteOptions {
	f.MaxTime = &d
	return f
}

// SetProjection limits the fields returned for the document
func (f *FindOneAndDeleteOptions) SetProjection(projection interface{}) *FindOneAndDeleteOptions {
	f.Projection = projection
	return f
}

// SetSort determines which document is deleted when the filter matches
// several
func (f *FindOneAndDeleteOptions) SetSort(sort interface{}) *FindOneAndDeleteOptions {
	f.Sort = sort
	return f
}

// SetWriteConcern sets the write concern for this operation only.
func (f *FindOneAndDeleteOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *FindOneAndDeleteOptions {
	f.WriteConcern = wc
	return f
}

// MergeFindOneAndDeleteOptions combines the argued FindOneAndDeleteOptions into a single FindOneAndDeleteOptions in
// a last-one-wins fashion
func MergeFindOneAndDeleteOptions(opts ...*FindOneAndDeleteOptions) *FindOneAndDeleteOptions {
	fo := FindOneAndDelete()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.MaxTime != nil {
			fo.MaxTime = opt.MaxTime
		}
		if opt.Projection != nil {
			fo.Projection = opt.Projection
		}
		if opt.Sort != nil {
			fo.Sort = opt.Sort
		}
		if opt.WriteConcern != nil {
			fo.WriteConcern = opt.WriteConcern
		}
	}

	return fo
}

// FindOneAndReplaceOptions represents all possible options to the
// findOneAndReplace() function
type FindOneAndReplaceOptions struct {
	MaxTime        *time.Duration                // The maximum amount of time to allow the operation to run
	Projection     interface{}                   // Limits the fields returned for the document
	ReturnDocument *mongooptions.ReturnDocument  // Whether to return the document before or after the replacement
	Sort           interface{}                   // Determines which document is replaced when the filter matches several
	Upsert         *bool                         // If true, insert the replacement when no document matches the filter
	WriteConcern   *writeconcern.WriteConcern    // The write concern for this operation only, overriding the collection default
}

// FindOneAndReplace returns a pointer to a new FindOneAndReplaceOptions
func FindOneAndReplace() *FindOneAndReplaceOptions {
	return &FindOneAndReplaceOptions{}
}

// SetMaxTime specifies the max amount of time to allow the operation to run
func (f *FindOneAndReplaceOptions) SetMaxTime(d time.Duration) *FindOneAndReplaceOptions {
	f.MaxTime = &d
	return f
}

// SetProjection limits the fields returned for the document
func (f *FindOneAndReplaceOptions) SetProjection(projection interface{}) *FindOneAndReplaceOptions {
	f.Projection = projection
	return f
}

// SetReturnDocument specifies whether to return the document before or after
// the replacement
func (f *FindOneAndReplaceOptions) SetReturnDocument(rd mongooptions.ReturnDocument) *FindOneAndReplaceOptions {
	f.ReturnDocument = &rd
	return f
}

// SetSort determines which document is replaced when the filter matches
// several
func (f *FindOneAndReplaceOptions) SetSort(sort interface{}) *FindOneAndReplaceOptions {
	f.Sort = sort
	return f
}

// SetUpsert specifies whether to insert the replacement when no document
// matches the filter
func (f *FindOneAndReplaceOptions) SetUpsert(b bool) *FindOneAndReplaceOptions {
	f.Upsert = &b
	return f
}

// SetWriteConcern sets the write concern for this operation only.
func (f *FindOneAndReplaceOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *FindOneAndReplaceOptions {
	f.WriteConcern = wc
	return f
}

// MergeFindOneAndReplaceOptions combines the argued FindOneAndReplaceOptions into a single
// FindOneAndReplaceOptions in a last-one-wins fashion
func MergeFindOneAndReplaceOptions(opts ...*FindOneAndReplaceOptions) *FindOneAndReplaceOptions {
	fo := FindOneAndReplace()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.MaxTime != nil {
			fo.MaxTime = opt.MaxTime
		}
		if opt.Projection != nil {
			fo.Projection = opt.Projection
		}
		if opt.ReturnDocument != nil {
			fo.ReturnDocument = opt.ReturnDocument
		}
		if opt.Sort != nil {
			fo.Sort = opt.Sort
		}
		if opt.Upsert != nil {
			fo.Upsert = opt.Upsert
		}
		if opt.WriteConcern != nil {
			fo.WriteConcern = opt.WriteConcern
		}
	}

	return fo
}

// FindOneAndUpdateOptions represents all possible options to the
// findOneAndUpdate() function
type FindOneAndUpdateOptions struct {
	MaxTime        *time.Duration               // The maximum amount of time to allow the operation to run
	Projection     interface{}                  // Limits the fields returned for the document
	ReturnDocument *mongooptions.ReturnDocument // Whether to return the document before or after the update
	Sort           interface{}                  // Determines which document is updated when the filter matches several
	Upsert         *bool                        // If true, insert a new document when no document matches the filter
	WriteConcern   *writeconcern.WriteConcern   // The write concern for this operation only, overriding the collection default
}

// FindOneAndUpdate returns a pointer to a new FindOneAndUpdateOptions
func FindOneAndUpdate() *FindOneAndUpdateOptions {
	return &FindOneAndUpdateOptions{}
}

// SetMaxTime specifies the max amount of time to allow the operation to run
func (f *FindOneAndUpdateOptions) SetMaxTime(d time.Duration) *FindOneAndUpdateOptions {
	f.MaxTime = &d
	return f
}

// SetProjection limits the fields returned for the document
func (f *FindOneAndUpdateOptions) SetProjection(projection interface{}) *FindOneAndUpdateOptions {
	f.Projection = projection
	return f
}

// SetReturnDocument specifies whether to return the document before or after
// the update
func (f *FindOneAndUpdateOptions) SetReturnDocument(rd mongooptions.ReturnDocument) *FindOneAndUpdateOptions {
	f.ReturnDocument = &rd
	return f
}

// SetSort determines which document is updated when the filter matches
// several
func (f *FindOneAndUpdateOptions) SetSort(sort interface{}) *FindOneAndUpdateOptions {
	f.Sort = sort
	return f
}

// SetUpsert specifies whether to insert a new document when no document
// matches the filter
func (f *FindOneAndUpdateOptions) SetUpsert(b bool) *FindOneAndUpdateOptions {
	f.Upsert = &b
	return f
}

// SetWriteConcern sets the write concern for this operation only.
func (f *FindOneAndUpdateOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *FindOneAndUpdateOptions {
	f.WriteConcern = wc
	return f
}

// MergeFindOneAndUpdateOptions combines the argued FindOneAndUpdateOptions into a single FindOneAndUpdateOptions
// in a last-one-wins fashion
func MergeFindOneAndUpdateOptions(opts ...*FindOneAndUpdateOptions) *FindOneAndUpdateOptions {
	fo := FindOneAndUpdate()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.MaxTime != nil {
			fo.MaxTime = opt.MaxTime
		}
		if opt.Projection != nil {
			fo.Projection = opt.Projection
		}
		if opt.ReturnDocument != nil {
			fo.ReturnDocument = opt.ReturnDocument
		}
		if opt.Sort != nil {
			fo.Sort = opt.Sort
		}
		if opt.Upsert != nil {
			fo.Upsert = opt.Upsert
		}
		if opt.WriteConcern != nil {
			fo.WriteConcern = opt.WriteConcern
		}
	}

	return fo
}
