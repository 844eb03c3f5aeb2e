//go:build !unix

package logx

import (
	"errors"
	"io"
)

func newSyslogWriter() (io.Writer, io.Closer, error) {
	return nil, nil, errors.New("syslog is not supported on this platform")
}
