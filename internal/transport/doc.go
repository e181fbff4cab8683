// Package transport opens the byte stream that carries one request to the
// daemon.
//
// Endpoints are written the way DOCKER_HOST spells them (unix://, tcp://,
// npipe://). Every dial failure is reported as a *ConnectionError with a
// coarse Reason so the CLI can print an actionable hint. Nothing here retries
// or pools connections: each request owns its connection from dial to close.
package transport
