package logger

import "go.uber.org/zap"

// Log is a no-op until Init or InitDevelopment runs.
var Log = zap.NewNop()

func Init() {
	Log = zap.Must(zap.NewProduction())
}

// InitDevelopment swaps in a console logger; tests and local runs use it.
func InitDevelopment() {
	Log = zap.Must(zap.NewDevelopment())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
