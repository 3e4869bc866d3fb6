package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

const noWritten = -1

// bufferedWriter holds a handler's response until the transaction outcome is
// known. Nothing reaches the client before commit.
type bufferedWriter struct {
	gin.ResponseWriter
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func newBufferedWriter(w gin.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{ResponseWriter: w, header: http.Header{}, status: http.StatusOK}
}

func (w *bufferedWriter) Header() http.Header { return w.header }

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.wrote {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() { w.wrote = true }

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.wrote = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int { return w.status }

func (w *bufferedWriter) Size() int {
	if !w.wrote {
		return noWritten
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool { return w.wrote }

// Flush is a no-op: streaming would leak uncommitted output.
func (w *bufferedWriter) Flush() {}

// flushTo copies the buffered response to the underlying writer.
func (w *bufferedWriter) flushTo(dst gin.ResponseWriter) {
	h := dst.Header()
	for k, v := range w.header {
		h[k] = v
	}
	dst.WriteHeader(w.status)
	if w.body.Len() == 0 {
		dst.WriteHeaderNow()
		return
	}
	_, _ = dst.Write(w.body.Bytes())
}
