//go:build windows

package main

import "os"

// Windows only delivers os.Interrupt to signal.Notify.
var stopSignals = []os.Signal{os.Interrupt}
