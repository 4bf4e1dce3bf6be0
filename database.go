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

// Database is a handle to a MongoDB database. It inherits the client's read
// and write concerns and read preference unless narrowed by
// DatabaseOptions.
type Database struct {
	client *Client
	name   string

	readConcern    *readconcern.ReadConcern
	readPreference *readpref.ReadPref
	writeConcern   *writeconcern.WriteConcern
	registry       *bsoncodec.Registry
}

func newDatabase(client *Client, name string, opts ...*options.DatabaseOptions) *Database {
	dbOpt := options.MergeDatabaseOptions(opts...)

	db := &Database{
		client:         client,
		name:           name,
		readConcern:    client.readConcern,
		readPreference: client.readPreference,
		writeConcern:   client.writeConcern,
	}
	if dbOpt.ReadConcern != nil {
		db.readConcern = dbOpt.ReadConcern
	}
	if dbOpt.WriteConcern != nil {
		db.writeConcern = dbOpt.WriteConcern
	}
	if dbOpt.ReadPreference != nil {
		db.readPreference = dbOpt.ReadPreference
	}
	if dbOpt.Registry != nil {
		db.registry = dbOpt.Registry
	}
	return db
}

// Client returns the Client the database handle was derived from.
func (db *Database) Client() *Client {
	return db.client
}

// Name returns the name of the database.
func (db *Database) Name() string {
	return db.name
}

// Collection returns a handle for the named collection.
func (db *Database) Collection(name string, opts ...*options.CollectionOptions) *Collection {
	return newCollection(db, name, opts...)
}

// WriteConcern returns the database's effective write concern. A nil write
// concern means the server default applies.
func (db *Database) WriteConcern() (*writeconcern.WriteConcern, error) {
	if _, err := db.client.delegateClient(); err != nil {
		return nil, err
	}
	return db.writeConcern, nil
}

// WriteConcernMap returns the database's effective write concern in its
// wire document form. An empty map means the server default applies.
func (db *Database) WriteConcernMap() (map[string]interface{}, error) {
	if _, err := db.client.delegateClient(); err != nil {
		return nil, err
	}
	return options.WriteConcernMap(db.writeConcern), nil
}

// ReadPreference returns the database's effective read preference, primary
// when none was configured.
func (db *Database) ReadPreference() (*readpref.ReadPref, error) {
	if _, err := db.client.delegateClient(); err != nil {
		return nil, err
	}
	if db.readPreference == nil {
		return readpref.Primary(), nil
	}
	return db.readPreference, nil
}

// ReadConcern returns the database's effective read concern, nil when none
// was configured.
func (db *Database) ReadConcern() (*readconcern.ReadConcern, error) {
	if _, err := db.client.delegateClient(); err != nil {
		return nil, err
	}
	return db.readConcern, nil
}

// driverDatabase derives the underlying driver handle carrying this
// database's resolved options.
func (db *Database) driverDatabase() (*mongo.Database, error) {
	delegate, err := db.client.delegateClient()
	if err != nil {
		return nil, err
	}
	dbOpts := mongooptions.Database()
	if db.readConcern != nil {
		dbOpts.SetReadConcern(db.readConcern)
	}
	if db.writeConcern != nil {
		dbOpts.SetWriteConcern(db.writeConcern)
	}
	if db.readPreference != nil {
		dbOpts.SetReadPreference(db.readPreference)
	}
	if db.registry != nil {
		dbOpts.SetRegistry(db.registry)
	}
	return delegate.Database(db.name, dbOpts), nil
}

// RunCommand executes the given command against the database. The command
// document is sent as-is; use options to route it with a read preference
// other than the database's.
func (db *Database) RunCommand(ctx context.Context, runCommand interface{}, opts ...*options.RunCmdOptions) *SingleResult {
	rco := options.MergeRunCmdOptions(opts...)
	rp := db.readPreference
	if rco.ReadPreference != nil {
		rp = rco.ReadPreference
	}
	delegate, err := db.driverDatabase()
	if err != nil {
		return &SingleResult{err: err, rp: rp}
	}
	driverOpts := mongooptions.RunCmd()
	if rco.ReadPreference != nil {
		driverOpts.SetReadPreference(rco.ReadPreference)
	}
	return &SingleResult{sr: delegate.RunCommand(ctx, runCommand, driverOpts), rp: rp}
}

// Drop drops the database.
func (db *Database) Drop(ctx context.Context) error {
	delegate, err := db.driverDatabase()
	if err != nil {
		return err
	}
	return delegate.Drop(ctx)
}

// ListCollectionNames returns the names of the collections in the database
// matching the filter. A nil filter matches all collections.
func (db *Database) ListCollectionNames(ctx context.Context, filter interface{}, opts ...*options.ListCollectionsOptions) ([]string, error) {
	delegate, err := db.driverDatabase()
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = bson.D{}
	}
	lco := options.MergeListCollectionsOptions(opts...)
	driverOpts := mongooptions.ListCollections()
	if lco.NameOnly != nil {
		driverOpts.SetNameOnly(*lco.NameOnly)
	}
	return delegate.ListCollectionNames(ctx, filter, driverOpts)
}

// CreateCollection explicitly creates the named collection.
func (db *Database) CreateCollection(ctx context.Context, name string) error {
	delegate, err := db.driverDatabase()
	if err != nil {
		return err
	}
	return delegate.CreateCollection(ctx, name)
}

// String implements fmt.Stringer.
func (db *Database) String() string {
	return fmt.Sprintf("Database(%s)", db.name)
}
