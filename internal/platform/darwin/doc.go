//go:build darwin && cgo

// Package darwin provides macOS platform support using CoreGraphics,
// Accessibility, and AppKit APIs. All functionality requires CGo
// (Objective-C frameworks). When CGo is disabled, the package compiles as a
// no-op stub and the provider registry stays empty.
package darwin
