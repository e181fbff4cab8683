//go:build !windows

package transport

import (
	"context"
	"net"
)

func dialPipe(context.Context, string) (net.Conn, error) {
	return nil, errPipeUnsupported
}
