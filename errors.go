// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/outboard-db/outboard/options"
)

// ErrClientDisconnected is returned when a Client is used before Connect or
// after Disconnect.
var ErrClientDisconnected = errors.New("client is disconnected")

// ErrNoDefaultDatabase is returned by Client.DefaultDatabase when the
// connection string does not name a database.
var ErrNoDefaultDatabase = errors.New("no default database name defined in the connection string")

// ErrNoDocuments is returned by SingleResult methods when the operation
// matched no documents.
var ErrNoDocuments = mongo.ErrNoDocuments

// IsConfigurationError reports whether err was caused by an unknown,
// malformed, or no longer supported client option.
func IsConfigurationError(err error) bool {
	var ce *options.ConfigurationError
	return errors.As(err, &ce)
}

// AsConfigurationError returns the ConfigurationError in err's chain, if
// any.
func AsConfigurationError(err error) (*options.ConfigurationError, bool) {
	var ce *options.ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsDuplicateKeyError reports whether err was caused by a unique index
// violation on the server.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsTimeout reports whether err was caused by a timeout.
func IsTimeout(err error) bool {
	return mongo.IsTimeout(err)
}

// IsNetworkError reports whether err was caused by a network problem.
func IsNetworkError(err error) bool {
	return mongo.IsNetworkError(err)
}

// IsWriteConcernError reports whether err carries a write concern error
// returned by the server, such as a wtimeout or an unsatisfiable w value.
func IsWriteConcernError(err error) bool {
	return WriteConcernErrorOf(err) != nil
}

// WriteConcernErrorOf extracts the server's write concern error from err,
// or nil when err carries none.
func WriteConcernErrorOf(err error) *mongo.WriteConcernError {
	var we mongo.WriteException
	if errors.As(err, &we) {
		return we.WriteConcernError
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		return bwe.WriteConcernError
	}
	return nil
}

// translateError smooths over the one driver error that is not an error for
// this package: a write dispatched with w=0 reports success, because no
// acknowledgment was requested. Everything else passes through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return nil
	}
	return err
}
