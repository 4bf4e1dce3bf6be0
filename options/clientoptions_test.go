// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/tag"
)

func TestApplyMapWriteConcern(t *testing.T) {
	testCases := []struct {
		name   string
		config map[string]interface{}
		want   map[string]interface{}
	}{
		{"empty", map[string]interface{}{}, map[string]interface{}{}},
		{"w zero", map[string]interface{}{"w": 0}, map[string]interface{}{"w": 0}},
		{"w one", map[string]interface{}{"w": 1}, map[string]interface{}{"w": 1}},
		{"w majority", map[string]interface{}{"w": "majority"}, map[string]interface{}{"w": "majority"}},
		{"wtimeout", map[string]interface{}{"w": 2, "wTimeoutMS": 1000},
			map[string]interface{}{"w": 2, "wtimeout": 1000}},
		{"wtimeout snake case", map[string]interface{}{"w": 2, "wtimeout_ms": 7500},
			map[string]interface{}{"w": 2, "wtimeout": 7500}},
		{"journal", map[string]interface{}{"journal": true}, map[string]interface{}{"j": true}},
		{"journal short key", map[string]interface{}{"j": false}, map[string]interface{}{"j": false}},
		{"all fields", map[string]interface{}{"w": 3, "journal": true, "wtimeoutms": 250},
			map[string]interface{}{"w": 3, "j": true, "wtimeout": 250}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := Client().ApplyMap(tc.config)
			require.NoError(t, opts.Validate())
			if diff := cmp.Diff(tc.want, WriteConcernMap(opts.WriteConcern)); diff != "" {
				t.Errorf("write concern map mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyMapHosts(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"host": "example.com", "port": 27020})
		require.NoError(t, opts.Validate())
		assert.Equal(t, []string{"example.com:27020"}, opts.Hosts)
	})
	t.Run("host list in one string", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"host": "a.example.com:27017,b.example.com:27018"})
		require.NoError(t, opts.Validate())
		assert.Equal(t, []string{"a.example.com:27017", "b.example.com:27018"}, opts.Hosts)
	})
	t.Run("host carrying a URI", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"host": "mongodb://h1:27017/mydb"})
		require.NoError(t, opts.Validate())
		assert.Equal(t, "mongodb://h1:27017/mydb", opts.GetURI())
		assert.Equal(t, "mydb", opts.DefaultDatabase())
	})
	t.Run("hosts slice", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"hosts": []string{"h1:1", "h2:2"}})
		require.NoError(t, opts.Validate())
		assert.Equal(t, []string{"h1:1", "h2:2"}, opts.Hosts)
	})
	t.Run("default port", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"host": "example.com"})
		require.NoError(t, opts.Validate())
		assert.Equal(t, []string{"example.com:27017"}, opts.Hosts)
	})
}

func TestApplyMapGeneralOptions(t *testing.T) {
	opts := Client().ApplyMap(map[string]interface{}{
		"appName":                  "test-app",
		"replicaSet":               "rs0",
		"directConnection":         true,
		"connectTimeoutMS":         3000,
		"serverSelectionTimeoutMS": 1500,
		"localThresholdMS":         42,
		"maxPoolSize":              50,
		"minPoolSize":              5,
		"retryWrites":              false,
		"compressors":              "snappy,zlib",
		"readConcernLevel":         "majority",
	})
	require.NoError(t, opts.Validate())

	require.NotNil(t, opts.AppName)
	assert.Equal(t, "test-app", *opts.AppName)
	require.NotNil(t, opts.ReplicaSet)
	assert.Equal(t, "rs0", *opts.ReplicaSet)
	require.NotNil(t, opts.Direct)
	assert.True(t, *opts.Direct)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 1500*time.Millisecond, *opts.ServerSelectionTimeout)
	require.NotNil(t, opts.LocalThreshold)
	assert.Equal(t, 42*time.Millisecond, *opts.LocalThreshold)
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(50), *opts.MaxPoolSize)
	require.NotNil(t, opts.MinPoolSize)
	assert.Equal(t, uint64(5), *opts.MinPoolSize)
	require.NotNil(t, opts.RetryWrites)
	assert.False(t, *opts.RetryWrites)
	assert.Equal(t, []string{"snappy", "zlib"}, opts.Compressors)
	require.NotNil(t, opts.ReadConcern)
	assert.Equal(t, "majority", opts.ReadConcern.Level)
}

func TestApplyMapReadPreference(t *testing.T) {
	t.Run("mode only", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"readPreference": "secondary"})
		require.NoError(t, opts.Validate())
		require.NotNil(t, opts.ReadPreference)
		assert.Equal(t, readpref.SecondaryMode, opts.ReadPreference.Mode())
	})
	t.Run("mode with tag sets", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{
			"readPreference":     "nearest",
			"readPreferenceTags": []map[string]string{{"dc": "ny"}, {"dc": "sf", "rack": "1"}},
		})
		require.NoError(t, opts.Validate())
		require.NotNil(t, opts.ReadPreference)
		assert.Equal(t, readpref.NearestMode, opts.ReadPreference.Mode())
		assert.Len(t, opts.ReadPreference.TagSets(), 2)
	})
	t.Run("mode with max staleness", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{
			"readPreference":      "secondaryPreferred",
			"maxStalenessSeconds": 90,
		})
		require.NoError(t, opts.Validate())
		require.NotNil(t, opts.ReadPreference)
		staleness, set := opts.ReadPreference.MaxStaleness()
		assert.True(t, set)
		assert.Equal(t, 90*time.Second, staleness)
	})
	t.Run("typed value", func(t *testing.T) {
		rp := readpref.Secondary()
		opts := Client().ApplyMap(map[string]interface{}{"readPreference": rp})
		require.NoError(t, opts.Validate())
		assert.Same(t, rp, opts.ReadPreference)
	})
}

func TestApplyMapTypedWriteConcern(t *testing.T) {
	wc := &writeconcern.WriteConcern{W: "majority"}
	opts := Client().ApplyMap(map[string]interface{}{"writeConcern": wc})
	require.NoError(t, opts.Validate())
	assert.Same(t, wc, opts.WriteConcern)
}

func TestApplyMapRemovedOptions(t *testing.T) {
	spellings := []string{"safe", "slaveOk", "slave_okay", "slaveokay", "secondaryAcceptableLatencyMS"}
	for _, key := range spellings {
		t.Run(key, func(t *testing.T) {
			opts := Client().ApplyMap(map[string]interface{}{key: true})
			err := opts.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, key, cfgErr.Option)
		})
	}
}

func TestApplyMapUnknownOption(t *testing.T) {
	opts := Client().ApplyMap(map[string]interface{}{"bogusOption": 1})
	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogusOption")
	assert.Contains(t, err.Error(), "unknown option")
}

func TestApplyMapFirstErrorIsDeterministic(t *testing.T) {
	config := map[string]interface{}{
		"zzzUnknown": 1,
		"aaaUnknown": 1,
		"mmmUnknown": 1,
	}
	for i := 0; i < 10; i++ {
		err := Client().ApplyMap(config).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "aaaUnknown")
	}
}

func TestApplyMapCoercionFailures(t *testing.T) {
	testCases := []struct {
		name   string
		config map[string]interface{}
	}{
		{"w bool", map[string]interface{}{"w": true}},
		{"w fractional float", map[string]interface{}{"w": 1.5}},
		{"port string garbage", map[string]interface{}{"port": "not-a-port"}},
		{"appname non-string", map[string]interface{}{"appName": 7}},
		{"journal non-bool", map[string]interface{}{"journal": "yes-please"}},
		{"maxPoolSize negative", map[string]interface{}{"maxPoolSize": -1}},
		{"tags wrong shape", map[string]interface{}{"readPreferenceTags": 42}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Client().ApplyMap(tc.config).Validate()
			require.Error(t, err)
			assert.True(t, isConfigurationError(err))
		})
	}
}

func isConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return assert.ObjectsAreEqual(true, errorsAs(err, &cfgErr))
}

func errorsAs(err error, target interface{}) bool {
	cfgErr, ok := target.(**ConfigurationError)
	if !ok {
		return false
	}
	for err != nil {
		if e, ok := err.(*ConfigurationError); ok {
			*cfgErr = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func TestApplyMapNumericCoercions(t *testing.T) {
	t.Run("float that is integral", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"w": float64(2)})
		require.NoError(t, opts.Validate())
		assert.Equal(t, 2, opts.WriteConcern.W)
	})
	t.Run("int32", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"w": int32(4)})
		require.NoError(t, opts.Validate())
		assert.Equal(t, 4, opts.WriteConcern.W)
	})
	t.Run("duration value", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"connectTimeoutMS": 2 * time.Second})
		require.NoError(t, opts.Validate())
		assert.Equal(t, 2*time.Second, *opts.ConnectTimeout)
	})
	t.Run("string integer", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"port": "27018", "host": "h"})
		require.NoError(t, opts.Validate())
		assert.Equal(t, []string{"h:27018"}, opts.Hosts)
	})
}

func TestApplyURI(t *testing.T) {
	t.Run("bare host", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://localhost:27017")
		require.NoError(t, opts.Validate())
		assert.Equal(t, "mongodb://localhost:27017", opts.GetURI())
		assert.Equal(t, "", opts.DefaultDatabase())
	})
	t.Run("full form", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://user:pass@h1:27017,h2:27018/mydb" +
			"?replicaSet=rs0&w=majority&readPreference=secondaryPreferred&maxStalenessSeconds=120&appName=app1")
		require.NoError(t, opts.Validate())

		assert.Equal(t, "mydb", opts.DefaultDatabase())
		require.NotNil(t, opts.ReplicaSet)
		assert.Equal(t, "rs0", *opts.ReplicaSet)
		require.NotNil(t, opts.AppName)
		assert.Equal(t, "app1", *opts.AppName)
		require.NotNil(t, opts.WriteConcern)
		assert.Equal(t, "majority", opts.WriteConcern.W)
		require.NotNil(t, opts.ReadPreference)
		assert.Equal(t, readpref.SecondaryPreferredMode, opts.ReadPreference.Mode())
		staleness, set := opts.ReadPreference.MaxStaleness()
		assert.True(t, set)
		assert.Equal(t, 120*time.Second, staleness)
	})
	t.Run("numeric w", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://localhost:27017/?w=2&wtimeoutMS=500&journal=true")
		require.NoError(t, opts.Validate())
		want := map[string]interface{}{"w": 2, "j": true, "wtimeout": 500}
		if diff := cmp.Diff(want, WriteConcernMap(opts.WriteConcern)); diff != "" {
			t.Errorf("write concern map mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("read preference tags", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://localhost/?readPreference=nearest" +
			"&readPreferenceTags=dc:ny,rack:1&readPreferenceTags=")
		require.NoError(t, opts.Validate())
		require.NotNil(t, opts.ReadPreference)
		sets := opts.ReadPreference.TagSets()
		require.Len(t, sets, 2)
		assert.Equal(t, tag.Set{{Name: "dc", Value: "ny"}, {Name: "rack", Value: "1"}}, sets[0])
		assert.Empty(t, sets[1])
	})
	t.Run("escaped database name", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://localhost:27017/my%20db")
		require.NoError(t, opts.Validate())
		assert.Equal(t, "my db", opts.DefaultDatabase())
	})
	t.Run("unknown parameters are forwarded", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://localhost/?heartbeatFrequencyMS=500&zlibCompressionLevel=6")
		require.NoError(t, opts.Validate())
		assert.Equal(t, "mongodb://localhost/?heartbeatFrequencyMS=500&zlibCompressionLevel=6", opts.GetURI())
	})
	t.Run("srv scheme accepted", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb+srv://cluster0.example.mongodb.net/mydb")
		require.NoError(t, opts.Validate())
		assert.Equal(t, "mydb", opts.DefaultDatabase())
		assert.Empty(t, opts.Hosts)
	})
}

func TestApplyURIErrors(t *testing.T) {
	testCases := []struct {
		name string
		uri  string
		want string
	}{
		{"bad scheme", "http://localhost:27017", "scheme"},
		{"no host", "mongodb://", "at least one host"},
		{"empty host in list", "mongodb://h1:27017,,h2:27018", "empty host"},
		{"empty credentials", "mongodb://@localhost:27017", "credentials"},
		{"malformed query pair", "mongodb://localhost/?justakey", "key=value"},
		{"removed option", "mongodb://localhost/?slaveOk=true", "slaveOk"},
		{"renamed option", "mongodb://localhost/?secondaryAcceptableLatencyMS=15", "localThresholdMS"},
		{"bad tls value", "mongodb://localhost/?tls=notabool", "boolean"},
		{"bad wtimeout", "mongodb://localhost/?wtimeoutMS=soon", "milliseconds"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := Client().ApplyURI(tc.uri)
			err := opts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestValidateRejections(t *testing.T) {
	testCases := []struct {
		name string
		opts *ClientOptions
		want string
	}{
		{"port out of range", Client().ApplyMap(map[string]interface{}{"host": "h", "port": 70000}),
			"between 1 and 65535"},
		{"host conflicts with hosts",
			Client().ApplyMap(map[string]interface{}{"host": "a.com", "hosts": []string{"b:1"}}),
			`combined with "hosts"`},
		{"port with multiple hosts",
			Client().ApplyMap(map[string]interface{}{"host": "a,b", "port": 27017}),
			"multiple hosts"},
		{"port repeated in host",
			Client().ApplyMap(map[string]interface{}{"host": "a:27018", "port": 27019}),
			"already names a port"},
		{"unsupported compressor",
			Client().SetCompressors([]string{"lz4"}),
			"unsupported compressor"},
		{"negative timeout", Client().SetConnectTimeout(-time.Second), "negative"},
		{"negative w", Client().ApplyMap(map[string]interface{}{"w": -1}), "negative"},
		{"w zero with journal",
			Client().ApplyMap(map[string]interface{}{"w": 0, "journal": true}),
			"both w=0 and j=true"},
		{"negative wtimeout", Client().SetW(1).SetWTimeout(-time.Second), "negative"},
		{"primary with tags",
			Client().ApplyMap(map[string]interface{}{
				"readPreference":     "primary",
				"readPreferenceTags": map[string]string{"dc": "ny"},
			}),
			`mode "primary"`},
		{"staleness needs non-primary",
			Client().ApplyMap(map[string]interface{}{"maxStalenessSeconds": 30}),
			`mode "primary"`},
		{"negative staleness",
			Client().ApplyMap(map[string]interface{}{
				"readPreference":      "secondary",
				"maxStalenessSeconds": -1,
			}),
			"negative"},
		{"unknown read preference mode",
			Client().ApplyMap(map[string]interface{}{"readPreference": "sometimes"}),
			"unknown mode"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	opts := Client().ApplyMap(map[string]interface{}{"w": 2, "readPreference": "secondary"})
	require.NoError(t, opts.Validate())
	wc, rp := opts.WriteConcern, opts.ReadPreference
	require.NoError(t, opts.Validate())
	assert.Same(t, wc, opts.WriteConcern)
	assert.Same(t, rp, opts.ReadPreference)
}

func TestErrSticksAcrossCalls(t *testing.T) {
	opts := Client().
		ApplyMap(map[string]interface{}{"safe": true}).
		SetAppName("later").
		ApplyURI("mongodb://localhost:27017")
	require.Error(t, opts.Err())
	err := opts.Validate()
	require.Error(t, err)
	assert.Equal(t, opts.Err(), err)
	// The failing option keeps its caller spelling.
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "safe", cfgErr.Option)
}

func TestPrecedence(t *testing.T) {
	t.Run("builder after map", func(t *testing.T) {
		opts := Client().ApplyMap(map[string]interface{}{"w": 1}).SetW(3)
		require.NoError(t, opts.Validate())
		assert.Equal(t, 3, opts.WriteConcern.W)
	})
	t.Run("typed write concern beats parts", func(t *testing.T) {
		wc := &writeconcern.WriteConcern{W: "majority"}
		opts := Client().SetWriteConcern(wc).ApplyMap(map[string]interface{}{"w": 0})
		require.NoError(t, opts.Validate())
		assert.Same(t, wc, opts.WriteConcern)
	})
	t.Run("map after URI", func(t *testing.T) {
		opts := Client().
			ApplyURI("mongodb://localhost:27017/?w=1").
			ApplyMap(map[string]interface{}{"w": 2})
		require.NoError(t, opts.Validate())
		assert.Equal(t, 2, opts.WriteConcern.W)
	})
}

func TestRedactedTarget(t *testing.T) {
	testCases := []struct {
		name string
		opts *ClientOptions
		want string
	}{
		{"zero config", Client(), "localhost:27017"},
		{"hosts", Client().SetHosts([]string{"a:1", "b:2"}), "a:1,b:2"},
		{"host and port map", Client().ApplyMap(map[string]interface{}{"host": "h", "port": 27018}), "h:27018"},
		{"uri", Client().ApplyURI("mongodb://h1:27017/mydb"), "mongodb://h1:27017"},
		{"uri with credentials", Client().ApplyURI("mongodb://user:secret@h1:27017/mydb"), "mongodb://h1:27017"},
		{"srv uri with credentials", Client().ApplyURI("mongodb+srv://u:p@cluster0.example.net/db"),
			"mongodb+srv://cluster0.example.net"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.opts.RedactedTarget()
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "secret")
		})
	}
}

func TestWriteConcernMap(t *testing.T) {
	t.Run("nil yields empty map", func(t *testing.T) {
		assert.Empty(t, WriteConcernMap(nil))
	})
	t.Run("full form", func(t *testing.T) {
		journal := true
		wc := &writeconcern.WriteConcern{W: 1, Journal: &journal, WTimeout: 1500 * time.Millisecond}
		want := map[string]interface{}{"w": 1, "j": true, "wtimeout": 1500}
		if diff := cmp.Diff(want, WriteConcernMap(wc)); diff != "" {
			t.Errorf("write concern map mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("returns a copy", func(t *testing.T) {
		wc := &writeconcern.WriteConcern{W: 1}
		first := WriteConcernMap(wc)
		first["w"] = 99
		second := WriteConcernMap(wc)
		assert.Equal(t, 1, second["w"])
	})
}

func TestMergeClientOptions(t *testing.T) {
	t.Run("nil entries are skipped", func(t *testing.T) {
		opts := MergeClientOptions(nil, Client().SetAppName("app"), nil)
		require.NotNil(t, opts.AppName)
		assert.Equal(t, "app", *opts.AppName)
	})
	t.Run("last one wins", func(t *testing.T) {
		merged := MergeClientOptions(
			Client().SetAppName("first").SetW(1),
			Client().SetAppName("second").SetJournal(true),
		)
		require.NoError(t, merged.Validate())
		assert.Equal(t, "second", *merged.AppName)
		want := map[string]interface{}{"w": 1, "j": true}
		if diff := cmp.Diff(want, WriteConcernMap(merged.WriteConcern)); diff != "" {
			t.Errorf("write concern map mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("errors propagate", func(t *testing.T) {
		merged := MergeClientOptions(Client().ApplyURI("bogus://x"), Client())
		require.Error(t, merged.Validate())
	})
}

func TestDriverOptions(t *testing.T) {
	t.Run("set fields are carried", func(t *testing.T) {
		opts := Client().
			SetAppName("converted").
			SetW(2).
			SetLocalThreshold(20 * time.Millisecond).
			SetMaxPoolSize(7)
		driverOpts, err := opts.DriverOptions()
		require.NoError(t, err)
		require.NotNil(t, driverOpts.AppName)
		assert.Equal(t, "converted", *driverOpts.AppName)
		require.NotNil(t, driverOpts.WriteConcern)
		assert.Equal(t, 2, driverOpts.WriteConcern.W)
		require.NotNil(t, driverOpts.LocalThreshold)
		assert.Equal(t, 20*time.Millisecond, *driverOpts.LocalThreshold)
		require.NotNil(t, driverOpts.MaxPoolSize)
		assert.Equal(t, uint64(7), *driverOpts.MaxPoolSize)
		assert.Equal(t, []string{defaultHostPort}, driverOpts.Hosts)
	})
	t.Run("uri is applied", func(t *testing.T) {
		opts := Client().ApplyURI("mongodb://h1:27017,h2:27018/mydb?replicaSet=rs0")
		driverOpts, err := opts.DriverOptions()
		require.NoError(t, err)
		assert.Equal(t, "mongodb://h1:27017,h2:27018/mydb?replicaSet=rs0", driverOpts.GetURI())
		require.NotNil(t, driverOpts.ReplicaSet)
		assert.Equal(t, "rs0", *driverOpts.ReplicaSet)
	})
	t.Run("validation failure surfaces", func(t *testing.T) {
		_, err := Client().ApplyMap(map[string]interface{}{"w": -1}).DriverOptions()
		require.Error(t, err)
	})
}
