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
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/tag"
)

func TestReadPrefPartsResolve(t *testing.T) {
	t.Parallel()

	t.Run("nothing supplied resolves to nil", func(t *testing.T) {
		rp, err := readPrefParts{}.resolve()
		require.NoError(t, err)
		assert.Nil(t, rp)
	})

	t.Run("mode only", func(t *testing.T) {
		mode := "secondary"
		rp, err := readPrefParts{Mode: &mode}.resolve()
		require.NoError(t, err)
		assert.Equal(t, readpref.SecondaryMode, rp.Mode())
	})

	t.Run("mode is case insensitive", func(t *testing.T) {
		mode := "SecondaryPreferred"
		rp, err := readPrefParts{Mode: &mode}.resolve()
		require.NoError(t, err)
		assert.Equal(t, readpref.SecondaryPreferredMode, rp.Mode())
	})

	t.Run("tags and staleness", func(t *testing.T) {
		mode := "nearest"
		staleness := 90 * time.Second
		parts := readPrefParts{
			Mode:         &mode,
			TagSets:      []tag.Set{{{Name: "dc", Value: "ny"}}},
			MaxStaleness: &staleness,
		}
		rp, err := parts.resolve()
		require.NoError(t, err)
		require.Len(t, rp.TagSets(), 1)
		got, set := rp.MaxStaleness()
		assert.True(t, set)
		assert.Equal(t, staleness, got)
	})

	t.Run("tags default the mode to primary and fail", func(t *testing.T) {
		_, err := readPrefParts{TagSets: []tag.Set{{{Name: "dc", Value: "ny"}}}}.resolve()
		require.Error(t, err)
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "readPreferenceTags", cfgErr.Option)
	})

	t.Run("primary with staleness rejected", func(t *testing.T) {
		mode := "primary"
		staleness := time.Minute
		_, err := readPrefParts{Mode: &mode, MaxStaleness: &staleness}.resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `mode "primary"`)
	})

	t.Run("negative staleness rejected", func(t *testing.T) {
		mode := "secondary"
		staleness := -time.Second
		_, err := readPrefParts{Mode: &mode, MaxStaleness: &staleness}.resolve()
		require.Error(t, err)
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		mode := "tertiary"
		_, err := readPrefParts{Mode: &mode}.resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown mode")
	})
}

func TestParseTagSetString(t *testing.T) {
	t.Parallel()

	t.Run("uri form", func(t *testing.T) {
		set, err := parseTagSetString("readPreferenceTags", "dc:ny,rack:1")
		require.NoError(t, err)
		assert.Equal(t, tag.Set{{Name: "dc", Value: "ny"}, {Name: "rack", Value: "1"}}, set)
	})
	t.Run("spaces are trimmed", func(t *testing.T) {
		set, err := parseTagSetString("readPreferenceTags", "dc: ny , rack :1")
		require.NoError(t, err)
		assert.Equal(t, tag.Set{{Name: "dc", Value: "ny"}, {Name: "rack", Value: "1"}}, set)
	})
	t.Run("empty string is the match-anything set", func(t *testing.T) {
		set, err := parseTagSetString("readPreferenceTags", "")
		require.NoError(t, err)
		assert.Empty(t, set)
	})
	t.Run("missing value rejected", func(t *testing.T) {
		_, err := parseTagSetString("readPreferenceTags", "dc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name:value")
	})
	t.Run("missing name rejected", func(t *testing.T) {
		_, err := parseTagSetString("readPreferenceTags", ":ny")
		require.Error(t, err)
	})
}

func TestParseTagSets(t *testing.T) {
	t.Parallel()

	t.Run("list of maps", func(t *testing.T) {
		sets, err := parseTagSets("tagSets", []map[string]string{{"dc": "ny"}, {"dc": "sf"}})
		require.NoError(t, err)
		assert.Len(t, sets, 2)
	})
	t.Run("single map", func(t *testing.T) {
		sets, err := parseTagSets("tagSets", map[string]string{"dc": "ny"})
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, tag.Set{{Name: "dc", Value: "ny"}}, sets[0])
	})
	t.Run("list of strings", func(t *testing.T) {
		sets, err := parseTagSets("tagSets", []string{"dc:ny", ""})
		require.NoError(t, err)
		require.Len(t, sets, 2)
		assert.Empty(t, sets[1])
	})
	t.Run("wrong shape rejected", func(t *testing.T) {
		_, err := parseTagSets("tagSets", 42)
		require.Error(t, err)
		_, err = parseTagSets("tagSets", []interface{}{42})
		require.Error(t, err)
	})
}
