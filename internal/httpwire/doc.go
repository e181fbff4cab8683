// Package httpwire implements the small slice of HTTP/1.1 that wharf speaks
// to the daemon over a raw byte stream.
//
// It writes bodyless request heads, parses the status line, discards the
// header block, and decodes chunked transfer encoding into a lazy sequence of
// payload segments. Nothing here depends on net/http: every framing rule lives
// in this package so the daemon client can stream progress events straight
// off the socket without buffering whole responses.
//
// Framing is chosen by the caller, never by inspecting headers. Callers that
// expect a chunked body wrap Response.Body with NewChunkReader; callers that
// expect a single block read Response.Body to EOF.
package httpwire
