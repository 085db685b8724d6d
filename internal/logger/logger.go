package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/skillmarket/internal/pkg/reqctx"
)

var Logger = zerolog.Nop()

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter configures Logger from LOG_LEVEL and LOG_FORMAT ("json" or "console").
func InitWithWriter(w io.Writer) {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = w
	if os.Getenv("LOG_FORMAT") != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(out).With().Timestamp().Str("service", "skillmarket").Logger().Level(level)
	zlog.Logger = Logger
}

// WithCtx returns Logger enriched with the request id found in ctx, if any.
func WithCtx(ctx context.Context) zerolog.Logger {
	if id := reqctx.RequestID(ctx); id != "" {
		return Logger.With().Str("request_id", id).Logger()
	}
	return Logger
}
