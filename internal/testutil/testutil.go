// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package testutil provides helpers for tests that talk to a live MongoDB
// deployment. A deployment is located through the MONGODB_URI environment
// variable, optionally loaded from a .env file, with a localhost default.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestDBName is the database tests write into.
const TestDBName = "outboard_test"

var envOnce sync.Once

var (
	probeOnce    sync.Once
	probeErr     error
	probeSetName string
)

func loadEnv() {
	envOnce.Do(func() {
		// A missing .env file is fine, the environment wins anyway.
		_ = godotenv.Load()
	})
}

// MongoDBURI returns the connection string for the test deployment.
func MongoDBURI() string {
	loadEnv()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	return uri
}

// AddOptionsToURI appends connection string options to a URI.
func AddOptionsToURI(uri string, opts ...string) string {
	if !strings.ContainsRune(uri, '?') {
		if uri[len(uri)-1] != '/' {
			uri += "/"
		}
		uri += "?"
	} else {
		uri += "&"
	}
	for _, opt := range opts {
		uri += opt
	}
	return uri
}

// ColName returns a collection name unique to the executing test.
func ColName(t *testing.T) string {
	t.Helper()
	return strings.ReplaceAll(t.Name(), "/", "_")
}

func probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(MongoDBURI()).
		SetServerSelectionTimeout(2 * time.Second)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		probeErr = err
		return
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		probeErr = err
		return
	}

	var hello struct {
		SetName string `bson:"setName"`
	}
	res := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}})
	if err := res.Decode(&hello); err != nil {
		probeErr = fmt.Errorf("hello against %s: %w", MongoDBURI(), err)
		return
	}
	probeSetName = hello.SetName
}

// SkipIfNoServer skips the test unless a deployment answers at
// MongoDBURI. The deployment is probed once per test binary.
func SkipIfNoServer(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	probeOnce.Do(probe)
	if probeErr != nil {
		t.Skipf("no MongoDB deployment reachable at %s: %v", MongoDBURI(), probeErr)
	}
}

// IsReplicaSet reports whether the test deployment is a replica set.
func IsReplicaSet(t *testing.T) bool {
	t.Helper()
	SkipIfNoServer(t)
	return probeSetName != ""
}
