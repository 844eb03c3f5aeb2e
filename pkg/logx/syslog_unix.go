//go:build unix

package logx

import (
	"io"
	"log/syslog"

	"github.com/rs/zerolog"
)

func newSyslogWriter() (io.Writer, io.Closer, error) {
	w, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_INFO, "svcmon")
	if err != nil {
		return nil, nil, err
	}
	return zerolog.SyslogLevelWriter(w), w, nil
}
