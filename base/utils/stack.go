package utils

import (
	"bytes"
	"runtime"
)

// Stack returns the formatted goroutine stack, dropping the first `skip`
// frames so the caller of the recover handler is on top.
func Stack(skip int) []byte {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	lines := bytes.Split(buf[:n], []byte("\n"))
	// line 0 is the goroutine header, every frame takes two lines
	drop := 1 + skip*2
	if drop >= len(lines) {
		return buf[:n]
	}
	out := append([][]byte{lines[0]}, lines[drop:]...)
	return bytes.Join(out, []byte("\n"))
}
