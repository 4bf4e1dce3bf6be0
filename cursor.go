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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Cursor iterates the result set of Find or Aggregate. It remembers the
// read preference the query was routed with.
type Cursor struct {
	cur *mongo.Cursor
	rp  *readpref.ReadPref
	ns  string
}

func newCursor(cur *mongo.Cursor, rp *readpref.ReadPref, ns string) *Cursor {
	return &Cursor{cur: cur, rp: rp, ns: ns}
}

// Next advances the cursor, blocking until a document, the end of the
// result set, or an error.
func (c *Cursor) Next(ctx context.Context) bool {
	return c.cur.Next(ctx)
}

// TryNext advances the cursor if a document is available without blocking
// for server round trips beyond the first.
func (c *Cursor) TryNext(ctx context.Context) bool {
	return c.cur.TryNext(ctx)
}

// Decode unmarshals the current document into val.
func (c *Cursor) Decode(val interface{}) error {
	return c.cur.Decode(val)
}

// Current returns the current document as raw BSON. The value is only
// valid until the next call to Next or TryNext.
func (c *Cursor) Current() bson.Raw {
	return c.cur.Current
}

// All drains the cursor into results, which must be a pointer to a slice,
// and closes it.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	return c.cur.All(ctx, results)
}

// ForEach calls fn for every remaining document and closes the cursor. It
// stops at the first error, whether from iteration or from fn.
func (c *Cursor) ForEach(ctx context.Context, fn func(bson.Raw) error) error {
	defer c.cur.Close(ctx)
	for c.cur.Next(ctx) {
		if err := fn(c.cur.Current); err != nil {
			return err
		}
	}
	return c.cur.Err()
}

// Err returns the error, if any, that the cursor encountered.
func (c *Cursor) Err() error {
	return c.cur.Err()
}

// ID returns the server-side cursor id, zero once exhausted.
func (c *Cursor) ID() int64 {
	return c.cur.ID()
}

// RemainingBatchLength returns the number of documents buffered in the
// current batch.
func (c *Cursor) RemainingBatchLength() int {
	return c.cur.RemainingBatchLength()
}

// Close closes the cursor.
func (c *Cursor) Close(ctx context.Context) error {
	return c.cur.Close(ctx)
}

// ReadPreference returns the read preference the query ran under, primary
// when none was configured.
func (c *Cursor) ReadPreference() *readpref.ReadPref {
	if c.rp == nil {
		return readpref.Primary()
	}
	return c.rp
}

// String implements fmt.Stringer.
func (c *Cursor) String() string {
	return fmt.Sprintf("Cursor(%s)", c.ns)
}
