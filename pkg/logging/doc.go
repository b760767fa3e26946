// Package logging provides structured logging for the compute network.
//
// # Overview
//
// The logging package wraps log/slog with network/node-specific context
// helpers (WithNetwork, WithCall, WithNode, WithOperation) and a Fatal that
// panics rather than exiting the process, since a library should never
// call os.Exit on a caller's behalf.
//
// # Basic Usage
//
//	logger := logging.New(logging.DefaultConfig())
//	logger.WithNetwork(net.ID()).Info("compiled")
//
// # Context Propagation
//
//	ctx = logger.WithContext(ctx)
//	logging.FromContext(ctx).Warn("cache eviction")
package logging
