// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SingleResult holds the outcome of an operation returning at most one
// document. It remembers the read preference the operation was routed
// with.
type SingleResult struct {
	sr  *mongo.SingleResult
	rp  *readpref.ReadPref
	err error
}

// Decode unmarshals the document into val. It returns ErrNoDocuments when
// the operation matched nothing.
func (sr *SingleResult) Decode(val interface{}) error {
	if sr.err != nil {
		return sr.err
	}
	return sr.sr.Decode(val)
}

// Err returns the operation error without decoding, ErrNoDocuments when
// the operation matched nothing.
func (sr *SingleResult) Err() error {
	if sr.err != nil {
		return sr.err
	}
	return sr.sr.Err()
}

// ReadPreference returns the read preference the operation ran under,
// primary when none was configured.
func (sr *SingleResult) ReadPreference() *readpref.ReadPref {
	if sr.rp == nil {
		return readpref.Primary()
	}
	return sr.rp
}
