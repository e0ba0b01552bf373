package basen

import "go.uber.org/zap"

// logger reports filter configuration events (spec.md §9's "CLI
// startup" analog for this package: IsolatedInitialize calls). It
// defaults to a no-op logger; codec payloads are never logged.
var logger *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger replaces the package logger. Passing nil restores the
// no-op default.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}
