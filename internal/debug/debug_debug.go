//go:build debug

// Package debug provides tracing which is only compiled in with the debug
// build tag:
//
//	go build -tags debug ./cmd/linejson
package debug

import "log"

func Printf(msg string, args ...any) {
	log.Printf("debug: "+msg, args...)
}

const On = true
