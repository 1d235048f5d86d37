// Package main provides the CLI entrypoint for logidconf.
//
// logidconf checks, normalizes and watches device configuration files:
//   - check resolves a file and reports errors and warnings with their paths
//   - normalize rewrites a file in canonical YAML or JSON
//   - query evaluates a JSONPath expression against the raw document
//   - watch keeps a resolved configuration live while the file changes
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
