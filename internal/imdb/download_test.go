package imdb

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload_UnknownContentLength(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 11*1024*1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before the body forces chunked encoding, so the
		// response carries no Content-Length and the client sees -1.
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	dest := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, download(srv.URL, dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), info.Size())

	// With an unknown total the progress lines report only the running
	// byte count, never a garbage total.
	assert.NotContains(t, logged.String(), " / ")
	assert.NotContains(t, logged.String(), "EiB")
}

func TestDownload_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "payload.bin")
	err := download(srv.URL, dest)
	require.Error(t, err)
	assert.NoFileExists(t, dest)
}
