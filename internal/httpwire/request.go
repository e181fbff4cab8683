package httpwire

import (
	"fmt"
	"io"
	"strings"
)

// WriteRequest writes a bodyless HTTP/1.1 request head in a single write.
// method and path are sent verbatim.
func WriteRequest(w io.Writer, method, path, host string) error {
	var b strings.Builder
	b.Grow(len(method) + len(path) + len(host) + 48)
	b.WriteString(method)
	b.WriteByte(' ')
	b.WriteString(path)
	b.WriteString(" HTTP/1.1\r\n")
	b.WriteString("Connection: close\r\n")
	b.WriteString("Host: ")
	b.WriteString(host)
	b.WriteString("\r\n\r\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write request %s %s: %w", method, path, err)
	}
	return nil
}
