// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/tag"
)

// readPrefParts collects the individual read preference fields supplied
// through maps and URIs before they are resolved into a *readpref.ReadPref.
type readPrefParts struct {
	Mode         *string
	TagSets      []tag.Set
	MaxStaleness *time.Duration
}

func (p readPrefParts) any() bool {
	return p.Mode != nil || len(p.TagSets) > 0 || p.MaxStaleness != nil
}

// resolve builds a read preference from the collected parts. It returns
// (nil, nil) when no part was supplied, in which case reads go to the
// primary.
func (p readPrefParts) resolve() (*readpref.ReadPref, error) {
	if !p.any() {
		return nil, nil
	}
	mode := readpref.PrimaryMode
	if p.Mode != nil {
		m, err := readpref.ModeFromString(*p.Mode)
		if err != nil {
			return nil, configErrorf("readPreference", "unknown mode %q", *p.Mode)
		}
		mode = m
	}
	var opts []readpref.Option
	if len(p.TagSets) > 0 {
		if mode == readpref.PrimaryMode {
			return nil, configErrorf("readPreferenceTags", `cannot be combined with mode "primary"`)
		}
		opts = append(opts, readpref.WithTagSets(p.TagSets...))
	}
	if p.MaxStaleness != nil {
		if mode == readpref.PrimaryMode {
			return nil, configErrorf("maxStalenessSeconds", `cannot be combined with mode "primary"`)
		}
		if *p.MaxStaleness < 0 {
			return nil, configErrorf("maxStalenessSeconds", "cannot be negative, got %v", *p.MaxStaleness)
		}
		opts = append(opts, readpref.WithMaxStaleness(*p.MaxStaleness))
	}
	rp, err := readpref.New(mode, opts...)
	if err != nil {
		return nil, &ConfigurationError{Option: "readPreference", Reason: err.Error()}
	}
	return rp, nil
}

// parseTagSets accepts the value forms a tag set option can take in a
// configuration map: a list of maps, a single map, a comma-separated
// "name:value" string, or a list of such strings.
func parseTagSets(option string, value interface{}) ([]tag.Set, error) {
	switch v := value.(type) {
	case []map[string]string:
		return tag.NewTagSetsFromMaps(v), nil
	case map[string]string:
		return []tag.Set{tag.NewTagSetFromMap(v)}, nil
	case string:
		set, err := parseTagSetString(option, v)
		if err != nil {
			return nil, err
		}
		return []tag.Set{set}, nil
	case []string:
		sets := make([]tag.Set, 0, len(v))
		for _, s := range v {
			set, err := parseTagSetString(option, s)
			if err != nil {
				return nil, err
			}
			sets = append(sets, set)
		}
		return sets, nil
	case []interface{}:
		sets := make([]tag.Set, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]string)
			if !ok {
				return nil, typeErrorf(option, item, "map of tag names to values")
			}
			sets = append(sets, tag.NewTagSetFromMap(m))
		}
		return sets, nil
	default:
		return nil, typeErrorf(option, value, "tag set list")
	}
}

// parseTagSetString parses the URI form "dc:ny,rack:1" into a tag set. The
// empty string parses to the empty tag set, which matches any server.
func parseTagSetString(option, s string) (tag.Set, error) {
	if s == "" {
		return tag.Set{}, nil
	}
	var set tag.Set
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, configErrorf(option, "tag %q must have the form name:value", pair)
		}
		set = append(set, tag.Tag{
			Name:  strings.TrimSpace(kv[0]),
			Value: strings.TrimSpace(kv[1]),
		})
	}
	return set, nil
}
