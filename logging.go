// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/event"
)

// CommandLogger returns a command monitor that logs the command lifecycle
// to the given logger at debug level. Plug it in with
// options.Client().SetMonitor.
func CommandLogger(logger logrus.FieldLogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			logger.WithFields(logrus.Fields{
				"commandName":  evt.CommandName,
				"databaseName": evt.DatabaseName,
				"requestId":    evt.RequestID,
			}).Debug("command started")
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			logger.WithFields(logrus.Fields{
				"commandName": evt.CommandName,
				"requestId":   evt.RequestID,
				"duration":    evt.Duration,
			}).Debug("command succeeded")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.WithFields(logrus.Fields{
				"commandName": evt.CommandName,
				"requestId":   evt.RequestID,
				"duration":    evt.Duration,
				"failure":     evt.Failure,
			}).Debug("command failed")
		},
	}
}
