// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

func TestMergeDatabaseOptions(t *testing.T) {
	t.Parallel()

	wc := &writeconcern.WriteConcern{W: "majority"}
	rp := readpref.Secondary()
	rc := readconcern.Majority()

	merged := MergeDatabaseOptions(
		nil,
		Database().SetWriteConcern(&writeconcern.WriteConcern{W: 1}).SetReadConcern(rc),
		Database().SetWriteConcern(wc).SetReadPreference(rp),
		nil,
	)
	assert.Same(t, wc, merged.WriteConcern, "last one wins")
	assert.Same(t, rp, merged.ReadPreference)
	assert.Same(t, rc, merged.ReadConcern, "earlier fields survive when unset later")
}

func TestMergeCollectionOptions(t *testing.T) {
	t.Parallel()

	wc := &writeconcern.WriteConcern{W: 2}
	merged := MergeCollectionOptions(
		Collection().SetReadPreference(readpref.Nearest()),
		Collection().SetWriteConcern(wc),
	)
	assert.Same(t, wc, merged.WriteConcern)
	assert.Equal(t, readpref.NearestMode, merged.ReadPreference.Mode())
}

func TestMergeOperationOptions(t *testing.T) {
	t.Parallel()

	t.Run("insert one", func(t *testing.T) {
		wc := &writeconcern.WriteConcern{W: 0}
		merged := MergeInsertOneOptions(
			InsertOne().SetBypassDocumentValidation(true),
			nil,
			InsertOne().SetWriteConcern(wc),
		)
		assert.Same(t, wc, merged.WriteConcern)
		assert.True(t, *merged.BypassDocumentValidation)
	})

	t.Run("insert many", func(t *testing.T) {
		merged := MergeInsertManyOptions(
			InsertMany().SetOrdered(false),
			InsertMany().SetOrdered(true),
		)
		assert.True(t, *merged.Ordered)
	})

	t.Run("find", func(t *testing.T) {
		rp := readpref.SecondaryPreferred()
		merged := MergeFindOptions(
			Find().SetLimit(10).SetBatchSize(4),
			Find().SetLimit(20).SetReadPreference(rp).SetMaxTime(time.Second),
		)
		assert.Equal(t, int64(20), *merged.Limit)
		assert.Equal(t, int32(4), *merged.BatchSize)
		assert.Same(t, rp, merged.ReadPreference)
		assert.Equal(t, time.Second, *merged.MaxTime)
	})

	t.Run("aggregate keeps both concerns", func(t *testing.T) {
		wc := &writeconcern.WriteConcern{W: "majority"}
		rp := readpref.Nearest()
		merged := MergeAggregateOptions(
			Aggregate().SetWriteConcern(wc).SetAllowDiskUse(true),
			Aggregate().SetReadPreference(rp),
		)
		assert.Same(t, wc, merged.WriteConcern)
		assert.Same(t, rp, merged.ReadPreference)
		assert.True(t, *merged.AllowDiskUse)
	})

	t.Run("empty merges stay empty", func(t *testing.T) {
		assert.Nil(t, MergeDeleteOptions().WriteConcern)
		assert.Nil(t, MergeUpdateOptions(nil, nil).WriteConcern)
		assert.Nil(t, MergeFindOneOptions().ReadPreference)
	})
}
