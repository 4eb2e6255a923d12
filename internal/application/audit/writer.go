// Package audit implementa el escritor de auditoría: registra acciones de negocio
// después de que el hecho que describen ya es durable y nunca revierte ese hecho.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/davihchagas/feedback-system-project/internal/domain"
	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
	"github.com/davihchagas/feedback-system-project/internal/domain/repository"
)

const defaultWriteTimeout = 3 * time.Second

// Writer agrega registros al log de auditoría.
//   - Record: espera la escritura (auditoría de negocio, tras el commit primario).
//   - RecordAsync: dispara y olvida (logs de acceso); el fallo solo llega al sink.
//
// En ambos casos el fallo se reporta una sola vez al ErrorSink.
type Writer struct {
	repo    repository.AuditLogRepository
	sink    ErrorSink
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewWriter construye el escritor. timeout acota cada escritura; 0 usa 3 s.
func NewWriter(repo repository.AuditLogRepository, sink ErrorSink, timeout time.Duration) *Writer {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Writer{repo: repo, sink: sink, timeout: timeout, now: time.Now}
}

// Record escribe entry y espera el resultado. Nunca debe llamarse antes de que el hecho
// descrito esté confirmado. Un fallo se devuelve como *domain.SecondaryWriteError
// (ya reportado al sink) para que el llamador lo adjunte a su resultado sin propagarlo.
// La cancelación del contexto del request no interrumpe la escritura.
func (w *Writer) Record(ctx context.Context, entry entity.AuditLogEntry) *domain.SecondaryWriteError {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()
	return w.write(ctx, domain.LegAudit, entry)
}

// RecordAsync escribe entry en una goroutine propia; el llamador no espera.
func (w *Writer) RecordAsync(entry entity.AuditLogEntry) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()
		_ = w.write(ctx, domain.LegAccessLog, entry)
	}()
}

// Wait bloquea hasta que terminen las escrituras asíncronas pendientes (apagado ordenado, tests).
func (w *Writer) Wait() {
	w.wg.Wait()
}

func (w *Writer) write(ctx context.Context, leg string, entry entity.AuditLogEntry) *domain.SecondaryWriteError {
	if entry.When.IsZero() {
		entry.When = w.now().UTC()
	}
	err := w.repo.Append(ctx, entry)
	if err == nil {
		w.sink.Written(leg)
		return nil
	}
	swe := &domain.SecondaryWriteError{Leg: leg, Action: entry.Action, Err: err}
	if entry.Entity != nil {
		swe.EntityID = entry.Entity.ID
	}
	w.sink.Report(swe)
	return swe
}
