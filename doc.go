// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package outboard is a configuration-faithful wrapper around the official
// MongoDB Go driver. A client is built once from options, a connection
// string, or a plain map, and every handle derived from it carries the
// resolved read and write configuration unchanged until a narrower scope
// overrides it.
//
// Basic usage starts with creating a Client and connecting it:
//
//	client, err := outboard.NewClient(options.Client().ApplyURI("mongodb://localhost:27017"))
//	if err != nil { log.Fatal(err) }
//	err = client.Connect(context.TODO())
//	if err != nil { log.Fatal(err) }
//	defer client.Disconnect(context.TODO())
//
// The Database and Collection types access the data:
//
//	collection := client.Database("baz").Collection("qux")
//
//	res, err := collection.InsertOne(context.Background(), map[string]string{"hello": "world"})
//	if err != nil { log.Fatal(err) }
//	id := res.InsertedID
//
// Configuration given on an operation's options narrows the collection's
// for that call only:
//
//	wc := &writeconcern.WriteConcern{W: 0}
//	_, err = collection.InsertOne(ctx, doc, options.InsertOne().SetWriteConcern(wc))
//
// Until Connect is called, and after Disconnect, operations and
// configuration accessors fail with ErrClientDisconnected.
package outboard
