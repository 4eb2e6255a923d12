package audit

import (
	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/pkg/logger"
)

// ErrorSink punto único de captura de fallos de escrituras secundarias.
type ErrorSink interface {
	Report(err *domain.SecondaryWriteError)
	// Written cuenta una escritura secundaria exitosa del tramo leg.
	Written(leg string)
}

// Counter métricas de escrituras secundarias (implementado por infrastructure/metrics).
type Counter interface {
	IncSecondaryFailure(leg string)
	IncSecondaryWrite(leg string)
}

// NopSink descarta todo.
type NopSink struct{}

func (NopSink) Report(*domain.SecondaryWriteError) {}
func (NopSink) Written(string)                     {}

// LogSink registra cada fallo con zerolog y, si hay contador, lo incrementa.
// Los fallos del log de acceso van a warn; el resto a error.
type LogSink struct {
	log     *logger.Logger
	counter Counter
}

// NewLogSink construye el sink. counter puede ser nil.
func NewLogSink(log *logger.Logger, counter Counter) *LogSink {
	return &LogSink{log: log, counter: counter}
}

// Report implementa ErrorSink.
func (s *LogSink) Report(err *domain.SecondaryWriteError) {
	if err == nil {
		return
	}
	if s.counter != nil {
		s.counter.IncSecondaryFailure(err.Leg)
	}
	ev := s.log.Error()
	if err.Leg == domain.LegAccessLog {
		ev = s.log.Warn()
	}
	ev.Str("leg", err.Leg).
		Str("action", err.Action).
		Str("entity_id", err.EntityID).
		Err(err.Err).
		Msg("escritura secundaria fallida")
}

// Written implementa ErrorSink.
func (s *LogSink) Written(leg string) {
	if s.counter != nil {
		s.counter.IncSecondaryWrite(leg)
	}
}
