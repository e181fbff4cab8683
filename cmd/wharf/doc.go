// Package main hosts the wharf CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds a
// daemon client from it, and renders image listings and pull progress for the
// terminal. Protocol work lives in internal/docker and internal/httpwire; the
// commands here only translate flags into client calls and format results.
package main
