// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bench

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/outboard-db/outboard"
	"github.com/outboard-db/outboard/internal/testutil"
	"github.com/outboard-db/outboard/options"
)

const (
	perfDBName     = "outboard_perf"
	corpusCollName = "corpus"

	// Nominal encoded sizes, used for MB-adjusted reporting.
	smallDocSize = 100
	largeDocSize = 27 << 10

	insertManyBatch = 10
)

func getClientDB(ctx context.Context) (*outboard.Database, error) {
	client, err := outboard.NewClient(options.Client().ApplyURI(testutil.MongoDBURI()))
	if err != nil {
		return nil, errors.Wrap(err, "building perf client")
	}
	if err = client.Connect(ctx); err != nil {
		return nil, errors.Wrap(err, "connecting perf client")
	}
	return client.Database(perfDBName), nil
}

func smallDoc(i int) bson.D {
	return bson.D{
		{Key: "_id", Value: i},
		{Key: "name", Value: fmt.Sprintf("item-%d", i)},
		{Key: "qty", Value: i % 100},
		{Key: "rating", Value: float64(i%10) / 2},
		{Key: "tags", Value: bson.A{"perf", "corpus"}},
	}
}

var largePayload = strings.Repeat("x", 1<<10)

func largeDoc(i int) bson.D {
	d := bson.D{{Key: "_id", Value: i}}
	for f := 0; f < 26; f++ {
		d = append(d, bson.E{Key: fmt.Sprintf("field%02d", f), Value: largePayload})
	}
	return d
}

// SmallDocInsertOne inserts small documents one by one with the default,
// acknowledged write concern.
func SmallDocInsertOne(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := getClientDB(ctx)
	if err != nil {
		return err
	}
	defer db.Client().Disconnect(ctx)

	if err = db.Drop(ctx); err != nil {
		return errors.Wrap(err, "dropping perf database")
	}
	coll := db.Collection(corpusCollName)

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		res, err := coll.InsertOne(ctx, smallDoc(i))
		if err != nil {
			return err
		}
		if res.InsertedID == nil {
			return errors.New("no inserted ID returned")
		}
	}
	tm.StopTimer()

	return nil
}

// SmallDocInsertOneUnacked is SmallDocInsertOne with a per-operation w=0
// override. Disconnect settles the connection before the case ends.
func SmallDocInsertOneUnacked(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := getClientDB(ctx)
	if err != nil {
		return err
	}
	defer db.Client().Disconnect(ctx)

	if err = db.Drop(ctx); err != nil {
		return errors.Wrap(err, "dropping perf database")
	}
	coll := db.Collection(corpusCollName)
	unacked := options.InsertOne().SetWriteConcern(&writeconcern.WriteConcern{W: 0})

	tm.ResetTimer()
	for i := 0; i < iters; i++ {
		if _, err := coll.InsertOne(ctx, smallDoc(i), unacked); err != nil {
			return err
		}
	}
	tm.StopTimer()

	return nil
}

// LargeDocInsertMany inserts large documents in fixed-size batches.
func LargeDocInsertMany(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := getClientDB(ctx)
	if err != nil {
		return err
	}
	defer db.Client().Disconnect(ctx)

	if err = db.Drop(ctx); err != nil {
		return errors.Wrap(err, "dropping perf database")
	}
	coll := db.Collection(corpusCollName)

	tm.ResetTimer()
	for i := 0; i < iters; i += insertManyBatch {
		docs := make([]interface{}, 0, insertManyBatch)
		for j := 0; j < insertManyBatch; j++ {
			docs = append(docs, largeDoc(i+j))
		}
		res, err := coll.InsertMany(ctx, docs)
		if err != nil {
			return err
		}
		if len(res.InsertedIDs) != insertManyBatch {
			return errors.Errorf("expected %d inserted IDs, got %d", insertManyBatch, len(res.InsertedIDs))
		}
	}
	tm.StopTimer()

	return nil
}

// FindManyCursor seeds a corpus and then iterates all of it through the
// wrapper cursor.
func FindManyCursor(ctx context.Context, tm TimerManager, iters int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := getClientDB(ctx)
	if err != nil {
		return err
	}
	defer db.Client().Disconnect(ctx)

	if err = db.Drop(ctx); err != nil {
		return errors.Wrap(err, "dropping perf database")
	}
	coll := db.Collection(corpusCollName)

	for i := 0; i < iters; i += insertManyBatch {
		docs := make([]interface{}, 0, insertManyBatch)
		for j := 0; j < insertManyBatch && i+j < iters; j++ {
			docs = append(docs, smallDoc(i+j))
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return errors.Wrap(err, "seeding corpus")
		}
	}

	tm.ResetTimer()
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	counter := 0
	for cursor.Next(ctx) {
		counter++
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	if counter != iters {
		return errors.Errorf("expected %d documents, iterated %d", iters, counter)
	}
	tm.StopTimer()

	if err = cursor.Close(ctx); err != nil {
		return err
	}

	return db.Drop(ctx)
}
