// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// writeConcernParts collects the individual write concern fields supplied
// through maps, URIs or the SetW/SetWTimeout/SetJournal builders before they
// are resolved into a *writeconcern.WriteConcern.
type writeConcernParts struct {
	W        interface{}
	WSet     bool
	WTimeout *time.Duration
	Journal  *bool
}

func (p writeConcernParts) any() bool {
	return p.WSet || p.WTimeout != nil || p.Journal != nil
}

// resolve builds a write concern from the collected parts. It returns
// (nil, nil) when no part was supplied, meaning server defaults apply.
func (p writeConcernParts) resolve() (*writeconcern.WriteConcern, error) {
	if !p.any() {
		return nil, nil
	}
	wc := &writeconcern.WriteConcern{}
	if p.WSet {
		switch w := p.W.(type) {
		case int:
			if w < 0 {
				return nil, configErrorf("w", "cannot be negative, got %d", w)
			}
			wc.W = w
		case string:
			wc.W = w
		default:
			return nil, typeErrorf("w", p.W, "integer or string")
		}
	}
	if p.Journal != nil {
		j := *p.Journal
		wc.Journal = &j
	}
	if p.WTimeout != nil {
		wc.WTimeout = *p.WTimeout
	}
	if err := validateWriteConcern(wc); err != nil {
		return nil, err
	}
	return wc, nil
}

// validateWriteConcern rejects combinations the server would refuse.
func validateWriteConcern(wc *writeconcern.WriteConcern) error {
	if wc == nil {
		return nil
	}
	if w, ok := wc.W.(int); ok {
		if w < 0 {
			return configErrorf("w", "cannot be negative, got %d", w)
		}
		if w == 0 && wc.Journal != nil && *wc.Journal {
			return configErrorf("w", "a write concern cannot have both w=0 and j=true")
		}
	}
	if wc.WTimeout < 0 {
		return configErrorf("wtimeoutMS", "cannot be negative, got %v", wc.WTimeout)
	}
	return nil
}

// WriteConcernMap returns the write concern in its wire document form, using
// the keys "w", "j" and "wtimeout". A nil write concern yields an empty map,
// meaning server defaults apply. The map is a copy; mutating it does not
// affect any handle.
func WriteConcernMap(wc *writeconcern.WriteConcern) map[string]interface{} {
	doc := make(map[string]interface{})
	if wc == nil {
		return doc
	}
	if wc.W != nil {
		switch w := wc.W.(type) {
		case int32:
			doc["w"] = int(w)
		case int64:
			doc["w"] = int(w)
		default:
			doc["w"] = w
		}
	}
	if wc.Journal != nil {
		doc["j"] = *wc.Journal
	}
	if wc.WTimeout > 0 {
		doc["wtimeout"] = int(wc.WTimeout / time.Millisecond)
	}
	return doc
}
