package netx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultipartFile(t *testing.T) {
	content := []byte("\xff\xd8\xff jpeg bytes")

	var gotField, gotName string
	var gotContent []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotField = "file"
		gotName = hdr.Filename
		gotContent, _ = io.ReadAll(f)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	body, ct, err := MultipartFile("file", "avatar.jpg", content)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))

	resp, err := http.Post(ts.URL, ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "file", gotField)
	require.Equal(t, "avatar.jpg", gotName)
	require.Equal(t, content, gotContent)
}

func TestReadBody_Limit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)

	b, err := ReadBody(resp, 10)
	require.NoError(t, err)
	require.Len(t, b, 10)
}
