package client

import "errors"

// ErrRequestFailed wraps every transport, status and decode failure.
// Callers cannot tell "not found" from "unreachable" and are not meant to.
var ErrRequestFailed = errors.New("request failed")
