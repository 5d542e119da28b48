// logger.go adds a structured Logger backed by go.uber.org/zap. It
// implements the same Logger interface NulLogger does, so it is a drop-in
// replacement for the UCI front end's `debug on` stream; plain NulLogger
// remains the default for silent operation.
package engine

import "go.uber.org/zap"

// ZapLogger reports search progress as structured log lines, used when the
// UCI front end is in `debug on` mode.
type ZapLogger struct {
	log *zap.Logger
}

// NewZapLogger wraps log as an engine.Logger.
func NewZapLogger(log *zap.Logger) *ZapLogger {
	return &ZapLogger{log: log}
}

func (zl *ZapLogger) BeginSearch() {
	zl.log.Debug("search started")
}

func (zl *ZapLogger) EndSearch() {
	zl.log.Debug("search finished")
}

func (zl *ZapLogger) PrintPV(stats Stats, score int32, pv []Move) {
	uciMoves := make([]string, len(pv))
	for i, m := range pv {
		uciMoves[i] = m.UCI()
	}
	zl.log.Info("pv",
		zap.Int("depth", stats.Depth),
		zap.Int("seldepth", stats.SelDepth),
		zap.Uint64("nodes", stats.Nodes),
		zap.Int32("score_cp", score),
		zap.Strings("pv", uciMoves),
	)
}
