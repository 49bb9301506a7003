package board

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// NewZapLogger builds a logr.Logger backed by zap, the way the teacher's
// cmd/gamemaster bootstraps its logger, minus the controller-runtime
// flag plumbing this engine has no use for. development enables
// human-readable, stack-trace-on-warn output; false selects production
// JSON encoding.
func NewZapLogger(development bool) (logr.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}
