package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

// MuxHandler пишет записи одновременно в stderr и в файл логов.
// В файл попадает всё начиная с Debug и с указанием источника,
// в stderr только Warn и выше, чтобы не мешать интерактивной оболочке.
type MuxHandler struct {
	stderrHandler slog.Handler
	fileHandler   slog.Handler
}

type LoggerWithFile struct {
	Logger  *slog.Logger
	LogFile *os.File
}

func NewMuxHandler(stderr, file io.Writer) *MuxHandler {
	return &MuxHandler{
		stderrHandler: slog.NewJSONHandler(stderr, &slog.HandlerOptions{
			Level:     slog.LevelWarn,
			AddSource: false,
		}),
		fileHandler: slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}),
	}
}

func (h *MuxHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.stderrHandler.Enabled(ctx, level) || h.fileHandler.Enabled(ctx, level)
}

func (h *MuxHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r); err != nil {
			return err
		}
	}
	if h.stderrHandler.Enabled(ctx, r.Level) {
		return h.stderrHandler.Handle(ctx, r)
	}
	return nil
}

func (h *MuxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MuxHandler{
		stderrHandler: h.stderrHandler.WithAttrs(attrs),
		fileHandler:   h.fileHandler.WithAttrs(attrs),
	}
}

func (h *MuxHandler) WithGroup(name string) slog.Handler {
	return &MuxHandler{
		stderrHandler: h.stderrHandler.WithGroup(name),
		fileHandler:   h.fileHandler.WithGroup(name),
	}
}

func NewLoggerWithFile(fileName string) *LoggerWithFile {
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("не удалось открыть файл логов: %v", err)
	}

	handler := NewMuxHandler(os.Stderr, logFile)
	return &LoggerWithFile{
		Logger:  slog.New(handler),
		LogFile: logFile,
	}
}
