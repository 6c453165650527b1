package fetch

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer ts.Close()

	data, mimeType, err := NewDownloader().Fetch(t.Context(), ts.URL+"/flyer.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, "image/jpeg", mimeType)
}

func TestFetchStripsContentTypeParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png; charset=binary")
		w.Write([]byte{0x89, 0x50})
	}))
	defer ts.Close()

	_, mimeType, err := NewDownloader().Fetch(t.Context(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestFetchRejectsNonImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer ts.Close()

	_, _, err := NewDownloader().Fetch(t.Context(), ts.URL)
	assert.ErrorContains(t, err, "invalid content type")
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, _, err := NewDownloader().Fetch(t.Context(), ts.URL)
	assert.ErrorContains(t, err, "status 404")
}

func TestFetchRejectsOversizedImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(make([]byte, 64))
	}))
	defer ts.Close()

	_, _, err := NewDownloader().WithMaxSize(16).Fetch(t.Context(), ts.URL)
	assert.ErrorContains(t, err, "too large")
}

func TestFetchRejectsOversizedContentLengthBeforeReading(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Length", "104857600")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, _, err := NewDownloader().Fetch(t.Context(), ts.URL)
	assert.ErrorContains(t, err, "too large")
	assert.ErrorContains(t, err, "104857600")
}

// A server that streams without end must not be buffered into memory: the
// read stops just past the size limit.
func TestFetchBoundsReadOfStreamingBody(t *testing.T) {
	var written atomic.Int64
	chunk := bytes.Repeat([]byte("x"), 32*1024)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		for {
			n, err := w.Write(chunk)
			written.Add(int64(n))
			if err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}))
	defer ts.Close()

	_, _, err := NewDownloader().WithMaxSize(16).Fetch(t.Context(), ts.URL)
	assert.ErrorContains(t, err, "too large")
	assert.Less(t, written.Load(), int64(2<<20), "download must stop near the size limit instead of draining the stream")
}
