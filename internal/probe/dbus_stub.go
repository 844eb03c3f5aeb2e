//go:build !linux

package probe

import (
	"errors"

	logx "svcmon/pkg/logx"
)

func openDBus(cfg Config, log logx.Logger) (Prober, error) {
	_ = cfg
	_ = log
	return nil, errors.New("dbus probe is only available on linux")
}
