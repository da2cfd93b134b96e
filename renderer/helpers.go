package renderer

import (
	"bytes"
	"io"
)

// ConditionalBlock buffers what block writes, and copies it to w only if block returns true.
//
// Sections whose emptiness is only known once written use it to disappear entirely.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	var buf bytes.Buffer
	if !block(&buf) {
		return
	}
	_, _ = buf.WriteTo(w)
}
