// Package docker is the composition root of the wharf client: it dials the
// daemon, writes one request per connection, and hands back either a fully
// decoded JSON payload (image listing) or a live sequence of decoded chunk
// segments (image pull progress).
//
// Every request owns its connection exclusively. There is no pooling and no
// retrying; any failure aborts the request and is returned as a typed error
// from this package, httpwire, or transport.
package docker
