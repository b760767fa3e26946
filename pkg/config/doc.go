// Package config provides configuration management for the compute network
// and its nodes.
//
// # Overview
//
// The config package centralizes execution limits, the requirement-cache
// bound, and the strict/lenient execution policy behind a single
// validated, cloneable struct.
//
// # Basic Usage
//
//	cfg := config.Default()
//	net := network.New(cfg)
//
// # Profiles
//
// Default, Development, Production, and Testing return pre-tuned
// variants; all share the same Validate and Clone behavior.
package config
