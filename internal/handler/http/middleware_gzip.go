package http

import (
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-leave-sync/internal/app"
	"github.com/MKhiriev/go-leave-sync/internal/utils"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// compressible lists the media types worth compressing. Everything the
// /data endpoint serves is one of them.
var compressible = map[string]bool{
	"application/json": true,
	"text/plain":       true,
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

// withGZip decompresses gzip request bodies and compresses JSON and text
// responses for clients that accept gzip. Bodyless responses stay as they
// are.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			body, err := newGzipBody(r.Body)
			if err != nil {
				utils.WriteError(w, app.MsgInvalidGzip, http.StatusBadRequest)
				return
			}
			r.Body = body
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1
		}

		if !acceptsGzip(r) {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipResponseWriter{ResponseWriter: w}
		defer gw.finish()
		next.ServeHTTP(gw, r)
	})
}

// gzipBody returns its reader to the pool on Close.
type gzipBody struct {
	*gzip.Reader
	src io.Closer
}

func newGzipBody(src io.ReadCloser) (*gzipBody, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(src); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}
	return &gzipBody{Reader: zr, src: src}, nil
}

func (b *gzipBody) Close() error {
	if b.Reader == nil {
		return nil
	}
	b.Reader.Close()
	gzipReaders.Put(b.Reader)
	b.Reader = nil
	return b.src.Close()
}

// gzipResponseWriter holds the status back until the first body write, when
// it knows the content type and can decide whether to compress.
type gzipResponseWriter struct {
	http.ResponseWriter
	zw     *gzip.Writer
	status int
	sent   bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.sent || w.status != 0 {
		return
	}
	w.status = status
}

func (w *gzipResponseWriter) Write(p []byte) (int, error) {
	if !w.sent {
		w.start(p)
	}
	if w.zw == nil {
		return w.ResponseWriter.Write(p)
	}
	return w.zw.Write(p)
}

// start sends the header. The content type is sniffed from the first chunk
// when the handler did not set one, so the sniffing never sees gzip bytes.
func (w *gzipResponseWriter) start(first []byte) {
	h := w.Header()
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", http.DetectContentType(first))
	}

	mediaType, _, _ := mime.ParseMediaType(h.Get("Content-Type"))
	if compressible[mediaType] && h.Get("Content-Encoding") == "" {
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
		h.Add("Vary", "Accept-Encoding")

		w.zw = gzipWriters.Get().(*gzip.Writer)
		w.zw.Reset(w.ResponseWriter)
	}
	w.sendHeader()
}

func (w *gzipResponseWriter) sendHeader() {
	w.sent = true
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(w.status)
}

// finish flushes the compressed stream, or sends the bare status when the
// handler wrote no body.
func (w *gzipResponseWriter) finish() {
	if !w.sent {
		if w.status != 0 {
			w.sendHeader()
		}
		return
	}
	if w.zw != nil {
		_ = w.zw.Close()
		gzipWriters.Put(w.zw)
		w.zw = nil
	}
}
