// ABOUTME: Log file sink for the TUI so logs never touch the terminal
// ABOUTME: Opens <config dir>/debug.log for appending, or discards when unset

package debuglog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

// FileName is the log file inside the config dir.
const FileName = "debug.log"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Open returns a writer appending to the debug log in configDir. With
// an empty configDir logs are discarded.
func Open(configDir string) (io.WriteCloser, error) {
	if configDir == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, oops.Code("DEBUGLOG_OPEN").With("dir", configDir).Wrap(err)
	}

	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, oops.Code("DEBUGLOG_OPEN").With("dir", configDir).Wrap(err)
	}
	return f, nil
}
