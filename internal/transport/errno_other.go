//go:build !unix && !windows

package transport

func isRefused(error) bool { return false }
