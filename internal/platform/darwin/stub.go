//go:build !darwin || !cgo

// Package darwin is a no-op stub when built without CGo or on another OS;
// the provider registry stays empty and callers get ErrUnsupported.
package darwin
