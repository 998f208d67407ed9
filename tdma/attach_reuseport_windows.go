//go:build windows

package tdma

func trySetReusePort(fd int) error { return nil }
