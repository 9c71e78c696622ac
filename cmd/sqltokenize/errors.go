package main

import "errors"

// Sentinel errors for command operations.
var (
	ErrUnknownOutputFormat  = errors.New("unknown output format")
	ErrUnknownTokenTypeName = errors.New("unknown token type name in settings override")
)
