// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package options defines the optional configurations for the outboard
// client and the operations run through it.
//
// Client settings can be supplied three ways, all feeding the same
// validation: chainable Set* builders, a plain configuration map, or a
// mongodb:// connection string. Keys in maps and connection strings are
// matched case-insensitively and ignoring underscores and dashes, so
// "wTimeoutMS", "wtimeout_ms" and "wtimeoutms" name the same option.
// Option names that older drivers accepted but this package does not, such
// as "safe" and "slaveOk", are rejected with a ConfigurationError naming
// the option as the caller spelled it.
//
// Database, collection and per-operation option types narrow the
// configuration of the scope they are applied to; a value set on a
// narrower scope wins for that scope only.
package options
