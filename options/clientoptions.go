// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"math"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bombsimon/logrusr/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
)

const defaultHostPort = "localhost:27017"

// Options that older drivers accepted but this one refuses outright. The
// map value is the reason reported in the ConfigurationError.
var removedOptions = map[string]string{
	"safe":      `the "safe" option is no longer supported; write acknowledgment is controlled by "w", "wtimeoutMS" and "journal"`,
	"slaveok":   `the "slaveOk" option is no longer supported; use "readPreference" instead`,
	"slaveokay": `the "slaveOk" option is no longer supported; use "readPreference" instead`,
	"secondaryacceptablelatencyms": `the "secondaryAcceptableLatencyMS" option was renamed to "localThresholdMS"`,
}

// normalizeKey maps the spellings accepted across maps and URIs onto one
// lookup key: "wTimeoutMS", "wtimeout_ms" and "wtimeoutms" name the same
// option.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "")
	return strings.ReplaceAll(key, "-", "")
}

// ClientOptions represents all possible options to configure a Client.
// Options set through Set* builders take precedence over the same option
// supplied via ApplyMap or ApplyURI.
type ClientOptions struct {
	AppName                *string
	Auth                   *mongooptions.Credential
	Compressors            []string
	ConnectTimeout         *time.Duration
	Direct                 *bool
	Hosts                  []string
	LocalThreshold         *time.Duration
	Logger                 logrus.FieldLogger
	MaxConnIdleTime        *time.Duration
	MaxPoolSize            *uint64
	MinPoolSize            *uint64
	Monitor                *event.CommandMonitor
	ReadConcern            *readconcern.ReadConcern
	ReadPreference         *readpref.ReadPref
	ReplicaSet             *string
	RetryReads             *bool
	RetryWrites            *bool
	ServerSelectionTimeout *time.Duration
	SocketTimeout          *time.Duration
	WriteConcern           *writeconcern.WriteConcern

	host      *string
	port      *int
	uri       string
	defaultDB string
	wc        writeConcernParts
	rp        readPrefParts
	err       error
	validated bool
}

// Client creates a new ClientOptions instance.
func Client() *ClientOptions {
	return &ClientOptions{}
}

// Err returns the first error recorded while applying options, if any.
func (c *ClientOptions) Err() error {
	return c.err
}

// GetURI returns the connection string applied via ApplyURI, or the empty
// string if none was applied.
func (c *ClientOptions) GetURI() string {
	return c.uri
}

// DefaultDatabase returns the database named in the connection string path,
// or the empty string if none was named.
func (c *ClientOptions) DefaultDatabase() string {
	return c.defaultDB
}

// RedactedTarget returns the deployment address with any credentials
// stripped, suitable for log lines and Stringers.
func (c *ClientOptions) RedactedTarget() string {
	if c.uri != "" {
		return redactURI(c.uri)
	}
	if len(c.Hosts) > 0 {
		return strings.Join(c.Hosts, ",")
	}
	if c.host != nil || c.port != nil {
		return joinHostPort(c.host, c.port)
	}
	return defaultHostPort
}

func redactURI(uri string) string {
	var scheme string
	rest := uri
	for _, prefix := range []string{"mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(uri, prefix) {
			scheme, rest = prefix, uri[len(prefix):]
			break
		}
	}
	if idx := strings.IndexAny(rest, "/?"); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.LastIndex(rest, "@"); idx >= 0 {
		rest = rest[idx+1:]
	}
	return scheme + rest
}

func joinHostPort(host *string, port *int) string {
	h := "localhost"
	if host != nil {
		h = *host
	}
	p := 27017
	if port != nil {
		p = *port
	}
	return net.JoinHostPort(h, strconv.Itoa(p))
}

// SetAppName specifies the client application name. The server records it
// with connection information and slow query logs.
func (c *ClientOptions) SetAppName(s string) *ClientOptions {
	c.AppName = &s
	return c
}

// SetAuth sets the authentication options.
func (c *ClientOptions) SetAuth(cred mongooptions.Credential) *ClientOptions {
	c.Auth = &cred
	return c
}

// SetCompressors specifies the wire compressors negotiated with the server,
// in order of preference. Supported values are "snappy", "zlib" and "zstd".
func (c *ClientOptions) SetCompressors(comps []string) *ClientOptions {
	c.Compressors = comps
	return c
}

// SetConnectTimeout specifies the timeout for an initial connection to a
// server.
func (c *ClientOptions) SetConnectTimeout(d time.Duration) *ClientOptions {
	c.ConnectTimeout = &d
	return c
}

// SetDirect specifies whether to connect directly to the given host instead
// of discovering the rest of the deployment.
func (c *ClientOptions) SetDirect(b bool) *ClientOptions {
	c.Direct = &b
	return c
}

// SetHosts specifies the initial list of addresses from which to discover
// the rest of the cluster.
func (c *ClientOptions) SetHosts(hosts []string) *ClientOptions {
	c.Hosts = hosts
	return c
}

// SetJournal requests acknowledgment that writes have reached the on-disk
// journal. Ignored when SetWriteConcern was used.
func (c *ClientOptions) SetJournal(b bool) *ClientOptions {
	c.wc.Journal = &b
	return c
}

// SetLocalThreshold specifies how far to distribute queries, beyond the
// server with the fastest round-trip time. Servers slower than the fastest
// by more than this window are not selected.
func (c *ClientOptions) SetLocalThreshold(d time.Duration) *ClientOptions {
	c.LocalThreshold = &d
	return c
}

// SetLogger routes connection lifecycle and command logs to the given
// logrus logger.
func (c *ClientOptions) SetLogger(l logrus.FieldLogger) *ClientOptions {
	c.Logger = l
	return c
}

// SetMaxConnIdleTime specifies how long a pooled connection can remain idle
// before being removed and closed.
func (c *ClientOptions) SetMaxConnIdleTime(d time.Duration) *ClientOptions {
	c.MaxConnIdleTime = &d
	return c
}

// SetMaxPoolSize specifies the max size of a server's connection pool.
func (c *ClientOptions) SetMaxPoolSize(n uint64) *ClientOptions {
	c.MaxPoolSize = &n
	return c
}

// SetMinPoolSize specifies the minimum number of connections kept in a
// server's connection pool.
func (c *ClientOptions) SetMinPoolSize(n uint64) *ClientOptions {
	c.MinPoolSize = &n
	return c
}

// SetMonitor specifies a command monitor used to see commands for a client.
func (c *ClientOptions) SetMonitor(m *event.CommandMonitor) *ClientOptions {
	c.Monitor = m
	return c
}

// SetReadConcern specifies the default read concern.
func (c *ClientOptions) SetReadConcern(rc *readconcern.ReadConcern) *ClientOptions {
	c.ReadConcern = rc
	return c
}

// SetReadPreference specifies the default read preference.
func (c *ClientOptions) SetReadPreference(rp *readpref.ReadPref) *ClientOptions {
	c.ReadPreference = rp
	return c
}

// SetReplicaSet specifies the name of the replica set of the cluster.
func (c *ClientOptions) SetReplicaSet(s string) *ClientOptions {
	c.ReplicaSet = &s
	return c
}

// SetRetryReads specifies whether supported read operations are retried
// once on transient errors.
func (c *ClientOptions) SetRetryReads(b bool) *ClientOptions {
	c.RetryReads = &b
	return c
}

// SetRetryWrites specifies whether the client has retryable writes enabled.
func (c *ClientOptions) SetRetryWrites(b bool) *ClientOptions {
	c.RetryWrites = &b
	return c
}

// SetServerSelectionTimeout specifies how long to block for server selection
// before giving up.
func (c *ClientOptions) SetServerSelectionTimeout(d time.Duration) *ClientOptions {
	c.ServerSelectionTimeout = &d
	return c
}

// SetSocketTimeout specifies the time to attempt to send or receive on a
// socket before the attempt times out.
func (c *ClientOptions) SetSocketTimeout(d time.Duration) *ClientOptions {
	c.SocketTimeout = &d
	return c
}

// SetW specifies the default write acknowledgment level. Accepts a
// non-negative int, "majority", or a custom write concern tag name. Ignored
// when SetWriteConcern was used.
func (c *ClientOptions) SetW(w interface{}) *ClientOptions {
	c.wc.W = w
	c.wc.WSet = true
	return c
}

// SetWriteConcern sets the default write concern. It takes precedence over
// SetW, SetWTimeout and SetJournal.
func (c *ClientOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *ClientOptions {
	c.WriteConcern = wc
	return c
}

// SetWTimeout specifies how long the server waits for the requested write
// acknowledgment before reporting a write concern error. Ignored when
// SetWriteConcern was used.
func (c *ClientOptions) SetWTimeout(d time.Duration) *ClientOptions {
	c.wc.WTimeout = &d
	return c
}

// ApplyMap applies a configuration map. Keys are matched case-insensitively
// and ignoring underscores, so "wTimeoutMS" and "wtimeout_ms" name the same
// option. Unknown keys are rejected. Errors are deferred to Validate.
func (c *ClientOptions) ApplyMap(config map[string]interface{}) *ClientOptions {
	if c.err != nil {
		return c
	}
	keys := make([]string, 0, len(config))
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := c.applyMapOption(key, config[key]); err != nil {
			c.err = err
			break
		}
	}
	return c
}

func (c *ClientOptions) applyMapOption(key string, value interface{}) error {
	norm := normalizeKey(key)
	if reason, ok := removedOptions[norm]; ok {
		return &ConfigurationError{Option: key, Reason: reason}
	}

	switch norm {
	case "host":
		switch value.(type) {
		case []string, []interface{}:
			hosts, err := coerceStringSlice(key, value)
			if err != nil {
				return err
			}
			c.Hosts = hosts
			return nil
		}
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		if strings.Contains(s, "://") {
			return c.applyURIString(key, s)
		}
		c.host = &s
	case "port":
		n, err := coerceInt(key, value)
		if err != nil {
			return err
		}
		c.port = &n
	case "hosts":
		hosts, err := coerceStringSlice(key, value)
		if err != nil {
			return err
		}
		c.Hosts = hosts
	case "uri", "connectionstring":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		return c.applyURIString(key, s)
	case "appname":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		c.AppName = &s
	case "replicaset":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		c.ReplicaSet = &s
	case "directconnection", "direct":
		b, err := coerceBool(key, value)
		if err != nil {
			return err
		}
		c.Direct = &b
	case "connecttimeoutms", "connecttimeout":
		d, err := coerceDurationMS(key, value)
		if err != nil {
			return err
		}
		c.ConnectTimeout = &d
	case "serverselectiontimeoutms", "serverselectiontimeout":
		d, err := coerceDurationMS(key, value)
		if err != nil {
			return err
		}
		c.ServerSelectionTimeout = &d
	case "sockettimeoutms", "sockettimeout":
		d, err := coerceDurationMS(key, value)
		if err != nil {
			return err
		}
		c.SocketTimeout = &d
	case "localthresholdms", "localthreshold":
		d, err := coerceDurationMS(key, value)
		if err != nil {
			return err
		}
		c.LocalThreshold = &d
	case "maxidletimems":
		d, err := coerceDurationMS(key, value)
		if err != nil {
			return err
		}
		c.MaxConnIdleTime = &d
	case "maxpoolsize":
		n, err := coerceUint64(key, value)
		if err != nil {
			return err
		}
		c.MaxPoolSize = &n
	case "minpoolsize":
		n, err := coerceUint64(key, value)
		if err != nil {
			return err
		}
		c.MinPoolSize = &n
	case "retrywrites":
		b, err := coerceBool(key, value)
		if err != nil {
			return err
		}
		c.RetryWrites = &b
	case "retryreads":
		b, err := coerceBool(key, value)
		if err != nil {
			return err
		}
		c.RetryReads = &b
	case "compressors":
		comps, err := coerceStringSlice(key, value)
		if err != nil {
			return err
		}
		c.Compressors = comps
	case "readconcernlevel":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		c.ReadConcern = &readconcern.ReadConcern{Level: s}
	case "username":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		c.credential().Username = s
	case "password":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		cred := c.credential()
		cred.Password = s
		cred.PasswordSet = true
	case "authsource":
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		c.credential().AuthSource = s
	case "w":
		w, err := coerceW(key, value)
		if err != nil {
			return err
		}
		c.wc.W = w
		c.wc.WSet = true
	case "wtimeoutms", "wtimeout":
		d, err := coerceDurationMS(key, value)
		if err != nil {
			return err
		}
		c.wc.WTimeout = &d
	case "journal", "j":
		b, err := coerceBool(key, value)
		if err != nil {
			return err
		}
		c.wc.Journal = &b
	case "writeconcern":
		wc, ok := value.(*writeconcern.WriteConcern)
		if !ok {
			return typeErrorf(key, value, "*writeconcern.WriteConcern")
		}
		c.WriteConcern = wc
	case "readpreference":
		if rp, ok := value.(*readpref.ReadPref); ok {
			c.ReadPreference = rp
			return nil
		}
		s, err := coerceString(key, value)
		if err != nil {
			return err
		}
		c.rp.Mode = &s
	case "readpreferencetags", "tagsets":
		sets, err := parseTagSets(key, value)
		if err != nil {
			return err
		}
		c.rp.TagSets = append(c.rp.TagSets, sets...)
	case "maxstalenessseconds", "maxstaleness":
		d, err := coerceDurationSeconds(key, value)
		if err != nil {
			return err
		}
		c.rp.MaxStaleness = &d
	default:
		return configErrorf(key, "unknown option")
	}
	return nil
}

// ApplyURI applies a mongodb:// or mongodb+srv:// connection string. Query
// parameters this package understands are validated here; parameters it
// does not understand are forwarded to the underlying driver untouched.
// Errors are deferred to Validate.
func (c *ClientOptions) ApplyURI(uri string) *ClientOptions {
	if c.err != nil {
		return c
	}
	if err := c.applyURIString("uri", uri); err != nil {
		c.err = err
	}
	return c
}

func (c *ClientOptions) applyURIString(option, uri string) error {
	var rest string
	switch {
	case strings.HasPrefix(uri, "mongodb://"):
		rest = uri[len("mongodb://"):]
	case strings.HasPrefix(uri, "mongodb+srv://"):
		rest = uri[len("mongodb+srv://"):]
	default:
		return configErrorf(option, `scheme must be "mongodb://" or "mongodb+srv://"`)
	}
	c.uri = uri

	var query string
	if idx := strings.Index(rest, "?"); idx >= 0 {
		rest, query = rest[:idx], rest[idx+1:]
	}
	if idx := strings.Index(rest, "/"); idx >= 0 {
		db, err := url.PathUnescape(rest[idx+1:])
		if err != nil {
			return configErrorf(option, "invalid database name %q", rest[idx+1:])
		}
		c.defaultDB = db
		rest = rest[:idx]
	}
	if idx := strings.LastIndex(rest, "@"); idx >= 0 {
		userinfo := rest[:idx]
		rest = rest[idx+1:]
		if userinfo == "" {
			return configErrorf(option, "credentials must not be empty when @ is present")
		}
		if _, err := url.QueryUnescape(userinfo); err != nil {
			return configErrorf(option, "invalid percent-escape in credentials")
		}
	}
	if rest == "" {
		return configErrorf(option, "must contain at least one host")
	}
	for _, host := range strings.Split(rest, ",") {
		if host == "" {
			return configErrorf(option, "empty host in host list")
		}
		if strings.ContainsAny(host, "/?@") {
			return configErrorf(option, "invalid host %q", host)
		}
	}

	if query == "" {
		return nil
	}
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return configErrorf(option, "query parameter %q must have the form key=value", pair)
		}
		value, err := url.QueryUnescape(kv[1])
		if err != nil {
			return configErrorf(kv[0], "invalid percent-escape in value %q", kv[1])
		}
		if err := c.applyURIParam(kv[0], value); err != nil {
			return err
		}
	}
	return nil
}

func (c *ClientOptions) applyURIParam(key, value string) error {
	norm := normalizeKey(key)
	if reason, ok := removedOptions[norm]; ok {
		return &ConfigurationError{Option: key, Reason: reason}
	}

	switch norm {
	case "appname":
		c.AppName = &value
	case "replicaset":
		c.ReplicaSet = &value
	case "directconnection":
		b, err := parseBoolParam(key, value)
		if err != nil {
			return err
		}
		c.Direct = &b
	case "connecttimeoutms":
		d, err := parseDurationMSParam(key, value)
		if err != nil {
			return err
		}
		c.ConnectTimeout = &d
	case "serverselectiontimeoutms":
		d, err := parseDurationMSParam(key, value)
		if err != nil {
			return err
		}
		c.ServerSelectionTimeout = &d
	case "sockettimeoutms":
		d, err := parseDurationMSParam(key, value)
		if err != nil {
			return err
		}
		c.SocketTimeout = &d
	case "localthresholdms":
		d, err := parseDurationMSParam(key, value)
		if err != nil {
			return err
		}
		c.LocalThreshold = &d
	case "maxidletimems":
		d, err := parseDurationMSParam(key, value)
		if err != nil {
			return err
		}
		c.MaxConnIdleTime = &d
	case "maxpoolsize":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return configErrorf(key, "must be a non-negative integer, got %q", value)
		}
		c.MaxPoolSize = &n
	case "minpoolsize":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return configErrorf(key, "must be a non-negative integer, got %q", value)
		}
		c.MinPoolSize = &n
	case "retrywrites":
		b, err := parseBoolParam(key, value)
		if err != nil {
			return err
		}
		c.RetryWrites = &b
	case "retryreads":
		b, err := parseBoolParam(key, value)
		if err != nil {
			return err
		}
		c.RetryReads = &b
	case "compressors":
		c.Compressors = strings.Split(value, ",")
	case "readconcernlevel":
		c.ReadConcern = &readconcern.ReadConcern{Level: value}
	case "authsource":
		c.credential().AuthSource = value
	case "w":
		if n, err := strconv.Atoi(value); err == nil {
			c.wc.W = n
		} else {
			c.wc.W = value
		}
		c.wc.WSet = true
	case "wtimeoutms":
		d, err := parseDurationMSParam(key, value)
		if err != nil {
			return err
		}
		c.wc.WTimeout = &d
	case "journal":
		b, err := parseBoolParam(key, value)
		if err != nil {
			return err
		}
		c.wc.Journal = &b
	case "readpreference":
		c.rp.Mode = &value
	case "readpreferencetags":
		set, err := parseTagSetString(key, value)
		if err != nil {
			return err
		}
		c.rp.TagSets = append(c.rp.TagSets, set)
	case "maxstalenessseconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return configErrorf(key, "must be an integer number of seconds, got %q", value)
		}
		d := time.Duration(n) * time.Second
		c.rp.MaxStaleness = &d
	case "ssl", "tls":
		if _, err := parseBoolParam(key, value); err != nil {
			return err
		}
		// Forwarded through the connection string.
	default:
		// Forwarded through the connection string.
	}
	return nil
}

func (c *ClientOptions) credential() *mongooptions.Credential {
	if c.Auth == nil {
		c.Auth = &mongooptions.Credential{}
	}
	return c.Auth
}

// Validate checks the accumulated options and freezes the derived values:
// after a successful Validate, WriteConcern and ReadPreference hold the
// resolved defaults. It is idempotent.
func (c *ClientOptions) Validate() error {
	if c.err != nil {
		return c.err
	}
	if c.validated {
		return nil
	}

	if c.port != nil && (*c.port < 1 || *c.port > 65535) {
		c.err = configErrorf("port", "must be between 1 and 65535, got %d", *c.port)
		return c.err
	}
	if c.host != nil || c.port != nil {
		if len(c.Hosts) > 0 {
			c.err = configErrorf("host", `cannot be combined with "hosts"`)
			return c.err
		}
		switch {
		case c.host != nil && strings.Contains(*c.host, ","):
			if c.port != nil {
				c.err = configErrorf("port", "cannot be combined with multiple hosts")
				return c.err
			}
			c.Hosts = strings.Split(*c.host, ",")
		case c.host != nil && strings.Contains(*c.host, ":"):
			if c.port != nil {
				c.err = configErrorf("port", "host %q already names a port", *c.host)
				return c.err
			}
			c.Hosts = []string{*c.host}
		default:
			c.Hosts = []string{joinHostPort(c.host, c.port)}
		}
	}

	for _, comp := range c.Compressors {
		switch comp {
		case "snappy", "zlib", "zstd":
		default:
			c.err = configErrorf("compressors", "unsupported compressor %q", comp)
			return c.err
		}
	}

	durations := []struct {
		name string
		d    *time.Duration
	}{
		{"connectTimeoutMS", c.ConnectTimeout},
		{"serverSelectionTimeoutMS", c.ServerSelectionTimeout},
		{"socketTimeoutMS", c.SocketTimeout},
		{"localThresholdMS", c.LocalThreshold},
		{"maxIdleTimeMS", c.MaxConnIdleTime},
	}
	for _, item := range durations {
		if item.d != nil && *item.d < 0 {
			c.err = configErrorf(item.name, "cannot be negative, got %v", *item.d)
			return c.err
		}
	}

	if c.WriteConcern == nil {
		wc, err := c.wc.resolve()
		if err != nil {
			c.err = err
			return c.err
		}
		c.WriteConcern = wc
	}
	if err := validateWriteConcern(c.WriteConcern); err != nil {
		c.err = err
		return c.err
	}

	if c.ReadPreference == nil {
		rp, err := c.rp.resolve()
		if err != nil {
			c.err = err
			return c.err
		}
		c.ReadPreference = rp
	}

	c.validated = true
	return nil
}

// DriverOptions validates the options and converts them into the underlying
// driver's ClientOptions.
func (c *ClientOptions) DriverOptions() (*mongooptions.ClientOptions, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := mongooptions.Client()
	if c.uri != "" {
		opts.ApplyURI(c.uri)
	}
	if len(c.Hosts) > 0 {
		opts.SetHosts(c.Hosts)
	} else if c.uri == "" {
		opts.SetHosts([]string{defaultHostPort})
	}
	if c.AppName != nil {
		opts.SetAppName(*c.AppName)
	}
	if c.ReplicaSet != nil {
		opts.SetReplicaSet(*c.ReplicaSet)
	}
	if c.Direct != nil {
		opts.SetDirect(*c.Direct)
	}
	if c.ConnectTimeout != nil {
		opts.SetConnectTimeout(*c.ConnectTimeout)
	}
	if c.ServerSelectionTimeout != nil {
		opts.SetServerSelectionTimeout(*c.ServerSelectionTimeout)
	}
	if c.SocketTimeout != nil {
		opts.SetSocketTimeout(*c.SocketTimeout)
	}
	if c.LocalThreshold != nil {
		opts.SetLocalThreshold(*c.LocalThreshold)
	}
	if c.MaxConnIdleTime != nil {
		opts.SetMaxConnIdleTime(*c.MaxConnIdleTime)
	}
	if c.MaxPoolSize != nil {
		opts.SetMaxPoolSize(*c.MaxPoolSize)
	}
	if c.MinPoolSize != nil {
		opts.SetMinPoolSize(*c.MinPoolSize)
	}
	if c.RetryWrites != nil {
		opts.SetRetryWrites(*c.RetryWrites)
	}
	if c.RetryReads != nil {
		opts.SetRetryReads(*c.RetryReads)
	}
	if len(c.Compressors) > 0 {
		opts.SetCompressors(c.Compressors)
	}
	if c.ReadConcern != nil {
		opts.SetReadConcern(c.ReadConcern)
	}
	if c.WriteConcern != nil {
		opts.SetWriteConcern(c.WriteConcern)
	}
	if c.ReadPreference != nil {
		opts.SetReadPreference(c.ReadPreference)
	}
	if c.Monitor != nil {
		opts.SetMonitor(c.Monitor)
	}
	if c.Auth != nil {
		opts.SetAuth(*c.Auth)
	}
	if c.Logger != nil {
		sink := logrusr.New(c.Logger).GetSink()
		opts.SetLoggerOptions(mongooptions.
			Logger().
			SetSink(sink).
			SetComponentLevel(mongooptions.LogComponentCommand, mongooptions.LogLevelDebug).
			SetComponentLevel(mongooptions.LogComponentConnection, mongooptions.LogLevelDebug))
	}
	return opts, nil
}

// MergeClientOptions combines the given ClientOptions instances into a
// single *ClientOptions in a last one wins fashion.
func MergeClientOptions(opts ...*ClientOptions) *ClientOptions {
	c := Client()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.err != nil && c.err == nil {
			c.err = opt.err
		}
		if opt.uri != "" {
			c.uri = opt.uri
		}
		if opt.defaultDB != "" {
			c.defaultDB = opt.defaultDB
		}
		if opt.host != nil {
			c.host = opt.host
		}
		if opt.port != nil {
			c.port = opt.port
		}
		if opt.Hosts != nil {
			c.Hosts = opt.Hosts
		}
		if opt.AppName != nil {
			c.AppName = opt.AppName
		}
		if opt.Auth != nil {
			c.Auth = opt.Auth
		}
		if opt.Compressors != nil {
			c.Compressors = opt.Compressors
		}
		if opt.ConnectTimeout != nil {
			c.ConnectTimeout = opt.ConnectTimeout
		}
		if opt.Direct != nil {
			c.Direct = opt.Direct
		}
		if opt.LocalThreshold != nil {
			c.LocalThreshold = opt.LocalThreshold
		}
		if opt.Logger != nil {
			c.Logger = opt.Logger
		}
		if opt.MaxConnIdleTime != nil {
			c.MaxConnIdleTime = opt.MaxConnIdleTime
		}
		if opt.MaxPoolSize != nil {
			c.MaxPoolSize = opt.MaxPoolSize
		}
		if opt.MinPoolSize != nil {
			c.MinPoolSize = opt.MinPoolSize
		}
		if opt.Monitor != nil {
			c.Monitor = opt.Monitor
		}
		if opt.ReadConcern != nil {
			c.ReadConcern = opt.ReadConcern
		}
		if opt.ReadPreference != nil {
			c.ReadPreference = opt.ReadPreference
		}
		if opt.ReplicaSet != nil {
			c.ReplicaSet = opt.ReplicaSet
		}
		if opt.RetryReads != nil {
			c.RetryReads = opt.RetryReads
		}
		if opt.RetryWrites != nil {
			c.RetryWrites = opt.RetryWrites
		}
		if opt.ServerSelectionTimeout != nil {
			c.ServerSelectionTimeout = opt.ServerSelectionTimeout
		}
		if opt.SocketTimeout != nil {
			c.SocketTimeout = opt.SocketTimeout
		}
		if opt.WriteConcern != nil {
			c.WriteConcern = opt.WriteConcern
		}
		if opt.wc.WSet {
			c.wc.W = opt.wc.W
			c.wc.WSet = true
		}
		if opt.wc.WTimeout != nil {
			c.wc.WTimeout = opt.wc.WTimeout
		}
		if opt.wc.Journal != nil {
			c.wc.Journal = opt.wc.Journal
		}
		if opt.rp.Mode != nil {
			c.rp.Mode = opt.rp.Mode
		}
		if opt.rp.TagSets != nil {
			c.rp.TagSets = opt.rp.TagSets
		}
		if opt.rp.MaxStaleness != nil {
			c.rp.MaxStaleness = opt.rp.MaxStaleness
		}
	}
	return c
}

func coerceString(option string, value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeErrorf(option, value, "string")
	}
	return s, nil
}

func coerceBool(option string, value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, configErrorf(option, "expected a boolean, got %q", v)
		}
		return b, nil
	default:
		return false, typeErrorf(option, value, "bool")
	}
}

func coerceInt(option string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float32:
		return coerceIntFromFloat(option, float64(v))
	case float64:
		return coerceIntFromFloat(option, v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, configErrorf(option, "expected an integer, got %q", v)
		}
		return n, nil
	default:
		return 0, typeErrorf(option, value, "integer")
	}
}

func coerceIntFromFloat(option string, v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, configErrorf(option, "expected an integer, got %v", v)
	}
	return int(v), nil
}

func coerceUint64(option string, value interface{}) (uint64, error) {
	n, err := coerceInt(option, value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, configErrorf(option, "cannot be negative, got %d", n)
	}
	return uint64(n), nil
}

func coerceDurationMS(option string, value interface{}) (time.Duration, error) {
	if d, ok := value.(time.Duration); ok {
		return d, nil
	}
	n, err := coerceInt(option, value)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Millisecond, nil
}

func coerceDurationSeconds(option string, value interface{}) (time.Duration, error) {
	if d, ok := value.(time.Duration); ok {
		return d, nil
	}
	n, err := coerceInt(option, value)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

func coerceStringSlice(option string, value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case string:
		return strings.Split(v, ","), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, typeErrorf(option, item, "string")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, typeErrorf(option, value, "string list")
	}
}

// coerceW accepts the value forms "w" can legally take: a non-negative
// integer, "majority", or a custom write concern tag name.
func coerceW(option string, value interface{}) (interface{}, error) {
	switch value.(type) {
	case string:
		return value, nil
	case bool:
		return nil, typeErrorf(option, value, "integer or string")
	}
	n, err := coerceInt(option, value)
	if err != nil {
		return nil, typeErrorf(option, value, "integer or string")
	}
	return n, nil
}

func parseBoolParam(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return false, configErrorf(key, "expected a boolean, got %q", value)
	}
	return b, nil
}

func parseDurationMSParam(key, value string) (time.Duration, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, configErrorf(key, "expected an integer number of milliseconds, got %q", value)
	}
	return time.Duration(n) * time.Millisecond, nil
}
