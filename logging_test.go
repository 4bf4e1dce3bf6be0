// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/event"

	"github.com/outboard-db/outboard/options"
)

func TestCommandLogger(t *testing.T) {
	t.Parallel()

	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	monitor := CommandLogger(logger)
	require.NotNil(t, monitor)

	ctx := context.Background()
	monitor.Started(ctx, &event.CommandStartedEvent{
		CommandName:  "insert",
		DatabaseName: "testdb",
		RequestID:    7,
	})
	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{
			CommandName: "insert",
			RequestID:   7,
			Duration:    3 * time.Millisecond,
		},
	})
	monitor.Failed(ctx, &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{
			CommandName: "insert",
			RequestID:   8,
		},
		Failure: errors.New("duplicate key").Error(),
	})

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "command started", entries[0].Message)
	assert.Equal(t, "insert", entries[0].Data["commandName"])
	assert.Equal(t, "testdb", entries[0].Data["databaseName"])
	assert.Equal(t, "command succeeded", entries[1].Message)
	assert.Equal(t, "command failed", entries[2].Message)
	assert.Equal(t, "duplicate key", entries[2].Data["failure"])
}

func TestClientLifecycleLogging(t *testing.T) {
	t.Parallel()

	logger, hook := logrustest.NewNullLogger()
	ctx := context.Background()
	client, err := Connect(ctx, options.Client().SetLogger(logger))
	require.NoError(t, err)
	require.NoError(t, client.Disconnect(ctx))

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
		assert.Equal(t, "localhost:27017", entry.Data["target"])
	}
	assert.Contains(t, messages, "client connected")
	assert.Contains(t, messages, "client disconnected")
}

func TestNoLoggerStaysQuiet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, err := Connect(ctx, options.Client())
	require.NoError(t, err)
	assert.Nil(t, client.logger)
	require.NoError(t, client.Disconnect(ctx))
}
