// Copyright (C) Outboard, Inc. 2024-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import "fmt"

// ConfigurationError is returned when a client option is unknown, malformed,
// or no longer supported. Option holds the name as the caller spelled it.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration option %q: %s", e.Option, e.Reason)
}

func configErrorf(option, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

func typeErrorf(option string, value interface{}, want string) *ConfigurationError {
	return configErrorf(option, "expected %s, got %T", want, value)
}
