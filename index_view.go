// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package outboard

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// IndexView is a handle to the indexes of a collection.
type IndexView struct {
	coll *Collection
}

func (iv IndexView) driverView() (mongo.IndexView, error) {
	target, err := iv.coll.driverCollection(nil, nil)
	if err != nil {
		return mongo.IndexView{}, err
	}
	return target.Indexes(), nil
}

// CreateOne creates a single index described by the model and returns its
// name.
func (iv IndexView) CreateOne(ctx context.Context, model mongo.IndexModel) (string, error) {
	view, err := iv.driverView()
	if err != nil {
		return "", err
	}
	return view.CreateOne(ctx, model)
}

// CreateMany creates the indexes described by the models and returns
// their names.
func (iv IndexView) CreateMany(ctx context.Context, models []mongo.IndexModel) ([]string, error) {
	view, err := iv.driverView()
	if err != nil {
		return nil, err
	}
	return view.CreateMany(ctx, models)
}

// List returns a cursor over the index specifications of the collection.
func (iv IndexView) List(ctx context.Context) (*Cursor, error) {
	view, err := iv.driverView()
	if err != nil {
		return nil, err
	}
	cur, err := view.List(ctx)
	if err != nil {
		return nil, err
	}
	return newCursor(cur, iv.coll.readPreference, iv.coll.FullName()), nil
}

// DropOne drops the index with the given name.
func (iv IndexView) DropOne(ctx context.Context, name string) error {
	view, err := iv.driverView()
	if err != nil {
		return err
	}
	_, err = view.DropOne(ctx, name)
	return err
}

// DropAll drops all indexes on the collection except the one on _id.
func (iv IndexView) DropAll(ctx context.Context) error {
	view, err := iv.driverView()
	if err != nil {
		return err
	}
	_, err = view.DropAll(ctx)
	return err
}
