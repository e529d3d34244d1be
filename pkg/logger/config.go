package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // text in dev, plain slog
	BackendZap Backend = "zap" // JSON via slog-zap
)

type Config struct {
	Service    string
	Version    string
	InstanceID string

	Level   slog.Level
	Env     Env
	Backend Backend // default: zap for stage/prod, std for dev
	Debug   bool

	// zap sampling
	SampleInitial    int
	SampleThereafter int

	AddSource bool
}
