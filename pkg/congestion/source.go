package congestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source. raw feed document, the caller closes the reader.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

type HTTPSource struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (hs *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hs.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", hs.url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", hs.url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (hs *HTTPSource) String() string {
	return hs.url
}

// FileSource. feed snapshot on local disk
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (fs *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(fs.path)
}

func (fs *FileSource) String() string {
	return fs.path
}

// NewSource picks FileSource for file:// and bare paths, HTTPSource otherwise.
func NewSource(location string, timeout time.Duration) Source {
	switch {
	case strings.HasPrefix(location, "file://"):
		return NewFileSource(strings.TrimPrefix(location, "file://"))
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, timeout)
	default:
		return NewFileSource(location)
	}
}
