// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/outboard-db/outboard/options"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a handle to a MongoDB collection. It inherits the
// database's read and write concerns and read preference unless narrowed
// by CollectionOptions, and options given on an individual operation
// narrow further for that call only.
type Collection struct {
	db   *Database
	name string

	readConcern    *readconcern.ReadConcern
	readPreference *readpref.ReadPref
	writeConcern   *writeconcern.WriteConcern
	registry       *bsoncodec.Registry
}

func newCollection(db *Database, name string, opts ...*options.CollectionOptions) *Collection {
	collOpt := options.MergeCollectionOptions(opts...)

	coll := &Collection{
		db:             db,
		name:           name,
		readConcern:    db.readConcern,
		readPreference: db.readPreference,
		writeConcern:   db.writeConcern,
		registry:       db.registry,
	}
	if collOpt.ReadConcern != nil {
		coll.readConcern = collOpt.ReadConcern
	}
	if collOpt.WriteConcern != nil {
		coll.writeConcern = collOpt.WriteConcern
	}
	if collOpt.ReadPreference != nil {
		coll.readPreference = collOpt.ReadPreference
	}
	if collOpt.Registry != nil {
		coll.registry = collOpt.Registry
	}
	return coll
}

// Clone returns a copy of the collection handle with the given options
// applied on top of the current configuration.
func (coll *Collection) Clone(opts ...*options.CollectionOptions) *Collection {
	clone := &Collection{
		db:             coll.db,
		name:           coll.name,
		readConcern:    coll.readConcern,
		readPreference: coll.readPreference,
		writeConcern:   coll.writeConcern,
		registry:       coll.registry,
	}
	collOpt := options.MergeCollectionOptions(opts...)
	if collOpt.ReadConcern != nil {
		clone.readConcern = collOpt.ReadConcern
	}
	if collOpt.WriteConcern != nil {
		clone.writeConcern = collOpt.WriteConcern
	}
	if collOpt.ReadPreference != nil {
		clone.readPreference = collOpt.ReadPreference
	}
	if collOpt.Registry != nil {
		clone.registry = collOpt.Registry
	}
	return clone
}

// Name returns the name of the collection.
func (coll *Collection) Name() string {
	return coll.name
}

// FullName returns the namespace of the collection, <database>.<name>.
func (coll *Collection) FullName() string {
	return fmt.Sprintf("%s.%s", coll.db.name, coll.name)
}

// Database returns the Database the collection handle was derived from.
func (coll *Collection) Database() *Database {
	return coll.db
}

// WriteConcern returns the collection's effective write concern. A nil
// write concern means the server default applies.
func (coll *Collection) WriteConcern() (*writeconcern.WriteConcern, error) {
	if _, err := coll.db.client.delegateClient(); err != nil {
		return nil, err
	}
	return coll.writeConcern, nil
}

// WriteConcernMap returns the collection's effective write concern in its
// wire document form. An empty map means the server default applies.
func (coll *Collection) WriteConcernMap() (map[string]interface{}, error) {
	if _, err := coll.db.client.delegateClient(); err != nil {
		return nil, err
	}
	return options.WriteConcernMap(coll.writeConcern), nil
}

// ReadPreference returns the collection's effective read preference,
// primary when none was configured.
func (coll *Collection) ReadPreference() (*readpref.ReadPref, error) {
	if _, err := coll.db.client.delegateClient(); err != nil {
		return nil, err
	}
	if coll.readPreference == nil {
		return readpref.Primary(), nil
	}
	return coll.readPreference, nil
}

// ReadConcern returns the collection's effective read concern, nil when
// none was configured.
func (coll *Collection) ReadConcern() (*readconcern.ReadConcern, error) {
	if _, err := coll.db.client.delegateClient(); err != nil {
		return nil, err
	}
	return coll.readConcern, nil
}

// driverCollection derives the underlying driver handle. A non-nil wc or
// rp narrows the collection's configuration for this derivation only.
func (coll *Collection) driverCollection(wc *writeconcern.WriteConcern, rp *readpref.ReadPref) (*mongo.Collection, error) {
	delegate, err := coll.db.client.delegateClient()
	if err != nil {
		return nil, err
	}
	if wc == nil {
		wc = coll.writeConcern
	}
	if rp == nil {
		rp = coll.readPreference
	}
	collOpts := mongooptions.Collection()
	if coll.readConcern != nil {
		collOpts.SetReadConcern(coll.readConcern)
	}
	if wc != nil {
		collOpts.SetWriteConcern(wc)
	}
	if rp != nil {
		collOpts.SetReadPreference(rp)
	}
	if coll.registry != nil {
		collOpts.SetRegistry(coll.registry)
	}
	return delegate.Database(coll.db.name).Collection(coll.name, collOpts), nil
}

// writeTarget resolves the driver handle and the write concern in effect
// for a single write operation.
func (coll *Collection) writeTarget(override *writeconcern.WriteConcern) (*mongo.Collection, *writeconcern.WriteConcern, error) {
	effective := coll.writeConcern
	if override != nil {
		effective = override
	}
	target, err := coll.driverCollection(override, nil)
	if err != nil {
		return nil, nil, err
	}
	return target, effective, nil
}

// readTarget resolves the driver handle and the read preference in effect
// for a single read operation.
func (coll *Collection) readTarget(override *readpref.ReadPref) (*mongo.Collection, *readpref.ReadPref, error) {
	effective := coll.readPreference
	if override != nil {
		effective = override
	}
	target, err := coll.driverCollection(nil, override)
	if err != nil {
		return nil, nil, err
	}
	return target, effective, nil
}

// InsertOne inserts a single document into the collection.
func (coll *Collection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	io := options.MergeInsertOneOptions(opts...)
	target, wc, err := coll.writeTarget(io.WriteConcern)
	if err != nil {
		return nil, err
	}
	driverOpts := mongooptions.InsertOne()
	if io.BypassDocumentValidation != nil {
		driverOpts.SetBypassDocumentValidation(*io.BypassDocumentValidation)
	}
	res, err := target.InsertOne(ctx, document, driverOpts)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// InsertMany inserts the given documents into the collection.
func (coll *Collection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	im := options.MergeInsertManyOptions(opts...)
	target, wc, err := coll.writeTarget(im.WriteConcern)
	if err != nil {
		return nil, err
	}
	driverOpts := mongooptions.InsertMany()
	if im.BypassDocumentValidation != nil {
		driverOpts.SetBypassDocumentValidation(*im.BypassDocumentValidation)
	}
	if im.Ordered != nil {
		driverOpts.SetOrdered(*im.Ordered)
	}
	res, err := target.InsertMany(ctx, documents, driverOpts)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// DeleteOne deletes at most one document matching the filter.
func (coll *Collection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	do := options.MergeDeleteOptions(opts...)
	target, wc, err := coll.writeTarget(do.WriteConcern)
	if err != nil {
		return nil, err
	}
	res, err := target.DeleteOne(ctx, filter)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// DeleteMany deletes all documents matching the filter.
func (coll *Collection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	do := options.MergeDeleteOptions(opts...)
	target, wc, err := coll.writeTarget(do.WriteConcern)
	if err != nil {
		return nil, err
	}
	res, err := target.DeleteMany(ctx, filter)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// UpdateOne updates at most one document matching the filter.
func (coll *Collection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	uo := options.MergeUpdateOptions(opts...)
	target, wc, err := coll.writeTarget(uo.WriteConcern)
	if err != nil {
		return nil, err
	}
	driverOpts := mongooptions.Update()
	if uo.BypassDocumentValidation != nil {
		driverOpts.SetBypassDocumentValidation(*uo.BypassDocumentValidation)
	}
	if uo.Upsert != nil {
		driverOpts.SetUpsert(*uo.Upsert)
	}
	res, err := target.UpdateOne(ctx, filter, update, driverOpts)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// UpdateMany updates all documents matching the filter.
func (coll *Collection) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	uo := options.MergeUpdateOptions(opts...)
	target, wc, err := coll.writeTarget(uo.WriteConcern)
	if err != nil {
		return nil, err
	}
	driverOpts := mongooptions.Update()
	if uo.BypassDocumentValidation != nil {
		driverOpts.SetBypassDocumentValidation(*uo.BypassDocumentValidation)
	}
	if uo.Upsert != nil {
		driverOpts.SetUpsert(*uo.Upsert)
	}
	res, err := target.UpdateMany(ctx, filter, update, driverOpts)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// ReplaceOne replaces at most one document matching the filter.
func (coll *Collection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	ro := options.MergeReplaceOptions(opts...)
	target, wc, err := coll.writeTarget(ro.WriteConcern)
	if err != nil {
		return nil, err
	}
	driverOpts := mongooptions.Replace()
	if ro.BypassDocumentValidation != nil {
		driverOpts.SetBypassDocumentValidation(*ro.BypassDocumentValidation)
	}
	if ro.Upsert != nil {
		driverOpts.SetUpsert(*ro.Upsert)
	}
	res, err := target.ReplaceOne(ctx, filter, replacement, driverOpts)
	coll.db.client.noteWrite(wc)
	return res, translateError(err)
}

// Find returns a cursor over the documents matching the filter. A nil
// filter matches all documents.
func (coll *Collection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*Cursor, error) {
	fo := options.MergeFindOptions(opts...)
	target, rp, err := coll.readTarget(fo.ReadPreference)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = bson.D{}
	}
	driverOpts := mongooptions.Find()
	if fo.BatchSize != nil {
		driverOpts.SetBatchSize(*fo.BatchSize)
	}
	if fo.Limit != nil {
		driverOpts.SetLimit(*fo.Limit)
	}
	if fo.MaxAwaitTime != nil {
		driverOpts.SetMaxAwaitTime(*fo.MaxAwaitTime)
	}
	if fo.MaxTime != nil {
		driverOpts.SetMaxTime(*fo.MaxTime)
	}
	if fo.Projection != nil {
		driverOpts.SetProjection(fo.Projection)
	}
	if fo.Skip != nil {
		driverOpts.SetSkip(*fo.Skip)
	}
	if fo.Sort != nil {
		driverOpts.SetSort(fo.Sort)
	}
	cur, err := target.Find(ctx, filter, driverOpts)
	if err != nil {
		return nil, err
	}
	return newCursor(cur, rp, coll.FullName()), nil
}

// FindOne returns at most one document matching the filter. A nil filter
// matches all documents.
func (coll *Collection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *SingleResult {
	fo := options.MergeFindOneOptions(opts...)
	target, rp, err := coll.readTarget(fo.ReadPreference)
	if err != nil {
		return &SingleResult{err: err, rp: rp}
	}
	if filter == nil {
		filter = bson.D{}
	}
	driverOpts := mongooptions.FindOne()
	if fo.MaxTime != nil {
		driverOpts.SetMaxTime(*fo.MaxTime)
	}
	if fo.Projection != nil {
		driverOpts.SetProjection(fo.Projection)
	}
	if fo.Skip != nil {
		driverOpts.SetSkip(*fo.Skip)
	}
	if fo.Sort != nil {
		driverOpts.SetSort(fo.Sort)
	}
	return &SingleResult{sr: target.FindOne(ctx, filter, driverOpts), rp: rp}
}

// FindOneAndDelete deletes at most one document matching the filter and
// returns it as it was before deletion.
func (coll *Collection) FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *SingleResult {
	fo := options.MergeFindOneAndDeleteOptions(opts...)
	target, wc, err := coll.writeTarget(fo.WriteConcern)
	if err != nil {
		return &SingleResult{err: err, rp: readpref.Primary()}
	}
	driverOpts := mongooptions.FindOneAndDelete()
	if fo.MaxTime != nil {
		driverOpts.SetMaxTime(*fo.MaxTime)
	}
	if fo.Projection != nil {
		driverOpts.SetProjection(fo.Projection)
	}
	if fo.Sort != nil {
		driverOpts.SetSort(fo.Sort)
	}
	sr := target.FindOneAndDelete(ctx, filter, driverOpts)
	coll.db.client.noteWrite(wc)
	return &SingleResult{sr: sr, rp: readpref.Primary()}
}

// FindOneAndUpdate updates at most one document matching the filter and
// returns it, before or after the update per ReturnDocument.
func (coll *Collection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *SingleResult {
	fo := options.MergeFindOneAndUpdateOptions(opts...)
	target, wc, err := coll.writeTarget(fo.WriteConcern)
	if err != nil {
		return &SingleResult{err: err, rp: readpref.Primary()}
	}
	driverOpts := mongooptions.FindOneAndUpdate()
	if fo.MaxTime != nil {
		driverOpts.SetMaxTime(*fo.MaxTime)
	}
	if fo.Projection != nil {
		driverOpts.SetProjection(fo.Projection)
	}
	if fo.ReturnDocument != nil {
		driverOpts.SetReturnDocument(*fo.ReturnDocument)
	}
	if fo.Sort != nil {
		driverOpts.SetSort(fo.Sort)
	}
	if fo.Upsert != nil {
		driverOpts.SetUpsert(*fo.Upsert)
	}
	sr := target.FindOneAndUpdate(ctx, filter, update, driverOpts)
	coll.db.client.noteWrite(wc)
	return &SingleResult{sr: sr, rp: readpref.Primary()}
}

// FindOneAndReplace replaces at most one document matching the filter and
// returns it, before or after the replacement per ReturnDocument.
func (coll *Collection) FindOneAndReplace(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.FindOneAndReplaceOptions) *SingleResult {
	fo := options.MergeFindOneAndReplaceOptions(opts...)
	target, wc, err := coll.writeTarget(fo.WriteConcern)
	if err != nil {
		return &SingleResult{err: err, rp: readpref.Primary()}
	}
	driverOpts := mongooptions.FindOneAndReplace()
	if fo.MaxTime != nil {
		driverOpts.SetMaxTime(*fo.MaxTime)
	}
	if fo.Projection != nil {
		driverOpts.SetProjection(fo.Projection)
	}
	if fo.ReturnDocument != nil {
		driverOpts.SetReturnDocument(*fo.ReturnDocument)
	}
	if fo.Sort != nil {
		driverOpts.SetSort(fo.Sort)
	}
	if fo.Upsert != nil {
		driverOpts.SetUpsert(*fo.Upsert)
	}
	sr := target.FindOneAndReplace(ctx, filter, replacement, driverOpts)
	coll.db.client.noteWrite(wc)
	return &SingleResult{sr: sr, rp: readpref.Primary()}
}

// CountDocuments counts the documents matching the filter. A nil filter
// counts all documents.
func (coll *Collection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	co := options.MergeCountOptions(opts...)
	target, _, err := coll.readTarget(co.ReadPreference)
	if err != nil {
		return 0, err
	}
	if filter == nil {
		filter = bson.D{}
	}
	driverOpts := mongooptions.Count()
	if co.Limit != nil {
		driverOpts.SetLimit(*co.Limit)
	}
	if co.MaxTime != nil {
		driverOpts.SetMaxTime(*co.MaxTime)
	}
	if co.Skip != nil {
		driverOpts.SetSkip(*co.Skip)
	}
	return target.CountDocuments(ctx, filter, driverOpts)
}

// EstimatedDocumentCount estimates the number of documents in the
// collection from collection metadata.
func (coll *Collection) EstimatedDocumentCount(ctx context.Context, opts ...*options.EstimatedDocumentCountOptions) (int64, error) {
	eo := options.MergeEstimatedDocumentCountOptions(opts...)
	target, _, err := coll.readTarget(eo.ReadPreference)
	if err != nil {
		return 0, err
	}
	driverOpts := mongooptions.EstimatedDocumentCount()
	if eo.MaxTime != nil {
		driverOpts.SetMaxTime(*eo.MaxTime)
	}
	return target.EstimatedDocumentCount(ctx, driverOpts)
}

// Distinct returns the distinct values of the field across documents
// matching the filter. A nil filter matches all documents.
func (coll *Collection) Distinct(ctx context.Context, fieldName string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error) {
	do := options.MergeDistinctOptions(opts...)
	target, _, err := coll.readTarget(do.ReadPreference)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = bson.D{}
	}
	driverOpts := mongooptions.Distinct()
	if do.MaxTime != nil {
		driverOpts.SetMaxTime(*do.MaxTime)
	}
	return target.Distinct(ctx, fieldName, filter, driverOpts)
}

// Aggregate runs the given pipeline against the collection.
func (coll *Collection) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*Cursor, error) {
	ao := options.MergeAggregateOptions(opts...)
	rp := coll.readPreference
	if ao.ReadPreference != nil {
		rp = ao.ReadPreference
	}
	target, err := coll.driverCollection(ao.WriteConcern, ao.ReadPreference)
	if err != nil {
		return nil, err
	}
	driverOpts := mongooptions.Aggregate()
	if ao.AllowDiskUse != nil {
		driverOpts.SetAllowDiskUse(*ao.AllowDiskUse)
	}
	if ao.BatchSize != nil {
		driverOpts.SetBatchSize(*ao.BatchSize)
	}
	if ao.MaxTime != nil {
		driverOpts.SetMaxTime(*ao.MaxTime)
	}
	cur, err := target.Aggregate(ctx, pipeline, driverOpts)
	if err != nil {
		return nil, err
	}
	return newCursor(cur, rp, coll.FullName()), nil
}

// Drop drops the collection.
func (coll *Collection) Drop(ctx context.Context) error {
	target, err := coll.driverCollection(nil, nil)
	if err != nil {
		return err
	}
	return target.Drop(ctx)
}

// Indexes returns an IndexView for the collection.
func (coll *Collection) Indexes() IndexView {
	return IndexView{coll: coll}
}

// String implements fmt.Stringer.
func (coll *Collection) String() string {
	return fmt.Sprintf("Collection(%s)", coll.FullName())
}
