// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/outboard-db/outboard/options"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
)

const defaultLocalThreshold = 15 * time.Millisecond

// Client is a handle to a MongoDB deployment. It is created disconnected:
// NewClient validates the configuration without touching the network, and
// Connect establishes the underlying connections. Before Connect and after
// Disconnect, option accessors and operations return ErrClientDisconnected.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	opts       *options.ClientOptions
	driverOpts *mongooptions.ClientOptions
	target     string
	logger     logrus.FieldLogger

	readConcern    *readconcern.ReadConcern
	readPreference *readpref.ReadPref
	writeConcern   *writeconcern.WriteConcern
	localThreshold time.Duration

	mu       sync.RWMutex
	delegate *mongo.Client

	// Set while the most recent write dispatched through this client was
	// unacknowledged. Disconnect settles such traffic before teardown.
	unacked atomic.Bool
}

// NewClient creates a new Client with the given options. The deployment is
// not contacted; call Connect before issuing operations.
func NewClient(opts ...*options.ClientOptions) (*Client, error) {
	clientOpts := options.MergeClientOptions(opts...)
	driverOpts, err := clientOpts.DriverOptions()
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts:           clientOpts,
		driverOpts:     driverOpts,
		target:         clientOpts.RedactedTarget(),
		logger:         clientOpts.Logger,
		readConcern:    clientOpts.ReadConcern,
		readPreference: clientOpts.ReadPreference,
		writeConcern:   clientOpts.WriteConcern,
		localThreshold: defaultLocalThreshold,
	}
	if clientOpts.LocalThreshold != nil {
		c.localThreshold = *clientOpts.LocalThreshold
	}
	return c, nil
}

// Connect creates a connected Client in one step.
func Connect(ctx context.Context, opts ...*options.ClientOptions) (*Client, error) {
	c, err := NewClient(opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Connect initializes the underlying driver client and its connection
// pools. Connecting an already connected Client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.delegate != nil {
		return nil
	}
	delegate, err := mongo.Connect(ctx, c.driverOpts)
	if err != nil {
		return err
	}
	c.delegate = delegate
	if c.logger != nil {
		c.logger.WithField("target", c.target).Info("client connected")
	}
	return nil
}

// Disconnect closes the underlying connections and returns the Client to
// the gated state. If the most recent write was unacknowledged, an
// acknowledged no-op is sent first so the server has processed that write
// before the sockets go away. A second Disconnect returns
// ErrClientDisconnected.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.delegate == nil {
		return ErrClientDisconnected
	}
	if c.unacked.Load() {
		// Order the unacknowledged write before teardown. Best effort: a
		// failed ping must not keep Disconnect from running.
		if err := c.delegate.Ping(ctx, readpref.Primary()); err != nil && c.logger != nil {
			c.logger.WithField("target", c.target).WithError(err).Debug("settle before close failed")
		}
		c.unacked.Store(false)
	}
	err := c.delegate.Disconnect(ctx)
	c.delegate = nil
	if c.logger != nil {
		c.logger.WithField("target", c.target).Info("client disconnected")
	}
	return err
}

// Connected reports whether the Client has been connected and not yet
// disconnected.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.delegate != nil
}

// delegateClient returns the underlying driver client, or
// ErrClientDisconnected when the gate is closed.
func (c *Client) delegateClient() (*mongo.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.delegate == nil {
		return nil, ErrClientDisconnected
	}
	return c.delegate, nil
}

// noteWrite records the acknowledgment mode of the most recent write.
func (c *Client) noteWrite(wc *writeconcern.WriteConcern) {
	c.unacked.Store(!wc.Acknowledged())
}

// WriteConcern returns the client's default write concern. A nil write
// concern means the server default applies.
func (c *Client) WriteConcern() (*writeconcern.WriteConcern, error) {
	if _, err := c.delegateClient(); err != nil {
		return nil, err
	}
	return c.writeConcern, nil
}

// WriteConcernMap returns the client's default write concern in its wire
// document form. An empty map means the server default applies.
func (c *Client) WriteConcernMap() (map[string]interface{}, error) {
	if _, err := c.delegateClient(); err != nil {
		return nil, err
	}
	return options.WriteConcernMap(c.writeConcern), nil
}

// ReadPreference returns the client's default read preference, primary when
// none was configured.
func (c *Client) ReadPreference() (*readpref.ReadPref, error) {
	if _, err := c.delegateClient(); err != nil {
		return nil, err
	}
	if c.readPreference == nil {
		return readpref.Primary(), nil
	}
	return c.readPreference, nil
}

// ReadConcern returns the client's default read concern, nil when none was
// configured.
func (c *Client) ReadConcern() (*readconcern.ReadConcern, error) {
	if _, err := c.delegateClient(); err != nil {
		return nil, err
	}
	return c.readConcern, nil
}

// LocalThreshold returns the latency window applied during server
// selection.
func (c *Client) LocalThreshold() (time.Duration, error) {
	if _, err := c.delegateClient(); err != nil {
		return 0, err
	}
	return c.localThreshold, nil
}

// Database returns a handle for the named database. Handles are cheap
// values and may be derived before Connect; operations through them are
// still gated.
func (c *Client) Database(name string, opts ...*options.DatabaseOptions) *Database {
	return newDatabase(c, name, opts...)
}

// DefaultDatabase returns a handle for the database named in the connection
// string, or ErrNoDefaultDatabase when the connection string does not name
// one.
func (c *Client) DefaultDatabase(opts ...*options.DatabaseOptions) (*Database, error) {
	name := c.opts.DefaultDatabase()
	if name == "" {
		return nil, ErrNoDefaultDatabase
	}
	return c.Database(name, opts...), nil
}

// Ping verifies that the client can reach a server matching the given read
// preference. If rp is nil, the client's read preference is used.
func (c *Client) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	delegate, err := c.delegateClient()
	if err != nil {
		return err
	}
	return delegate.Ping(ctx, rp)
}

// ListDatabaseNames returns the names of the databases on the server
// matching the filter. A nil filter matches all databases.
func (c *Client) ListDatabaseNames(ctx context.Context, filter interface{}) ([]string, error) {
	delegate, err := c.delegateClient()
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = bson.D{}
	}
	return delegate.ListDatabaseNames(ctx, filter)
}

// ServerVersion reports the server's version string from buildInfo.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	delegate, err := c.delegateClient()
	if err != nil {
		return "", err
	}
	var info struct {
		Version string `bson:"version"`
	}
	res := delegate.Database("admin").RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}})
	if err := res.Decode(&info); err != nil {
		return "", err
	}
	return info.Version, nil
}

// String implements fmt.Stringer. Credentials never appear in the output.
func (c *Client) String() string {
	return fmt.Sprintf("Client(%s)", c.target)
}
