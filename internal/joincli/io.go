package joincli

import (
	"io"
	"os"

	"github.com/canonica-labs/joinkit/internal/joinerr"
)

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

// OpenInput opens path for reading, treating "-" as standard input.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdin}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, joinerr.NewFileOpenError(path, err)
	}
	return f, nil
}
