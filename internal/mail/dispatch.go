// internal/mail/dispatch.go
//
// Background dispatch queue for outbound email.
//
// Context
// -------
// The contact handler must answer the visitor as soon as the row is
// persisted; email delivery is best-effort and at-most-once.  Instead of
// firing bare goroutines, sends are handed to a bounded channel consumed
// by one worker.  A full queue drops the job (logged + counted) rather
// than blocking a request.  Failures are logged and counted, never
// retried, and never affect the stored row.
//
// Shutdown: Close() stops intake, lets the worker drain what is queued,
// and returns once the last send finished.
package mail

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abasuthakur/portfolio-api/internal/contact"
	"github.com/abasuthakur/portfolio-api/internal/metrics"
)

// sendTimeout caps one delivery attempt.
const sendTimeout = 30 * time.Second

type jobKind string

const (
	kindNotification jobKind = "notification"
	kindAutoReply    jobKind = "auto_reply"
)

type job struct {
	kind jobKind
	msg  *contact.Message
}

// Dispatcher owns the queue and the worker goroutine.
type Dispatcher struct {
	sender Sender
	jobs   chan job
	g      *errgroup.Group
}

// NewDispatcher starts the worker.  queueSize bounds how many pending
// sends may pile up before new jobs are dropped.
func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		jobs:   make(chan job, queueSize),
		g:      &errgroup.Group{},
	}
	d.g.Go(d.run)
	return d
}

// EnqueueNotification queues the owner-notification email.
func (d *Dispatcher) EnqueueNotification(m *contact.Message) {
	d.enqueue(job{kind: kindNotification, msg: m})
}

// EnqueueAutoReply queues the visitor acknowledgment email.
func (d *Dispatcher) EnqueueAutoReply(m *contact.Message) {
	d.enqueue(job{kind: kindAutoReply, msg: m})
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.jobs <- j:
		metrics.MailQueueDepth.Set(float64(len(d.jobs)))
	default:
		metrics.MailDroppedTotal.Inc()
		zap.S().Errorw("mail queue full, dropping job",
			"kind", j.kind, "id", j.msg.ID)
	}
}

// Close stops intake and waits for the queue to drain.  Call once, after
// the HTTP listener has stopped accepting requests.
func (d *Dispatcher) Close() {
	close(d.jobs)
	_ = d.g.Wait()
}

// run is the worker loop.  It exits when the queue is closed and drained.
func (d *Dispatcher) run() error {
	for j := range d.jobs {
		metrics.MailQueueDepth.Set(float64(len(d.jobs)))

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		var err error
		switch j.kind {
		case kindNotification:
			err = d.sender.SendNotification(ctx, j.msg)
		case kindAutoReply:
			err = d.sender.SendAutoReply(ctx, j.msg)
		}
		cancel()

		if err != nil {
			metrics.MailErrorsTotal.WithLabelValues(string(j.kind)).Inc()
			zap.S().Errorw("mail send failed",
				"kind", j.kind, "id", j.msg.ID, "err", err)
			continue
		}
		metrics.MailSentTotal.WithLabelValues(string(j.kind)).Inc()
		zap.S().Infow("mail sent", "kind", j.kind, "id", j.msg.ID)
	}
	return nil
}
