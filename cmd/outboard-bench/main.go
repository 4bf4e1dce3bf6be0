// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/outboard-db/outboard/bench"
	"github.com/outboard-db/outboard/internal/testutil"
)

func main() {
	ctx := context.Background()
	fmt.Printf("running against %s\n", testutil.MongoDBURI())

	failed := false
	for _, def := range bench.AllCases() {
		res := def.Run(ctx)
		if res.HasErrors() {
			failed = true
			for _, msg := range res.ErrReport() {
				log.Printf("%s: %s", res.Name, msg)
			}
			continue
		}
		sum, err := res.Summarize()
		if err != nil {
			log.Printf("%s: %v", res.Name, err)
			failed = true
			continue
		}
		fmt.Println(sum)
	}
	if failed {
		os.Exit(1)
	}
}
