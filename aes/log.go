package aes

import "go.uber.org/zap"

// logger reports structural, non-secret lifecycle events: T-table
// first-use population and key-schedule construction. It defaults to a
// no-op logger so importing this package never forces a logging
// dependency on a caller; round keys, plaintext and ciphertext are
// never logged.
var logger *zap.SugaredLogger = zap.NewNop().Sugar()

// SetLogger replaces the package logger. Passing nil restores the
// no-op default.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}
