package handler

import (
	"bytes"
	"sync"
)

// Response bodies here are small JSON documents, so pooled buffers with a
// modest starting capacity cover nearly all encodes without growing.
var encodeBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	encodeBuffers.Put(buf)
}
