package services

import (
	"log"
	"time"

	"github.com/dramoir/dramoir-backend/pkg/utils"
)

const (
	mailQueueSize    = 256
	mailMaxAttempts  = 3
	mailRetryBackoff = 60 * time.Second
)

type mailJob struct {
	to      string
	subject string
	body    string
}

// Mailer delivers emails in the background so issuing a code never waits
// on SMTP. Each job gets up to three attempts with a fixed backoff; a job
// that still fails is logged and dropped, never surfaced to the request
// that queued it.
type Mailer struct {
	jobs        chan mailJob
	maxAttempts int
	backoff     time.Duration
	send        func(to []string, subject, body string) error
	done        chan struct{}
}

type MailerOption func(*Mailer)

// WithSendFunc replaces the SMTP transport, used by tests.
func WithSendFunc(send func(to []string, subject, body string) error) MailerOption {
	return func(m *Mailer) { m.send = send }
}

// WithBackoff shortens the retry delay, used by tests.
func WithBackoff(d time.Duration) MailerOption {
	return func(m *Mailer) { m.backoff = d }
}

func NewMailer(opts ...MailerOption) *Mailer {
	m := &Mailer{
		jobs:        make(chan mailJob, mailQueueSize),
		maxAttempts: mailMaxAttempts,
		backoff:     mailRetryBackoff,
		send:        utils.SendEmail,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run consumes the queue until Close is called. Start it in a goroutine
// from main.
func (m *Mailer) Run() {
	for job := range m.jobs {
		m.deliver(job)
	}
	close(m.done)
}

// Close stops accepting jobs and lets Run drain the queue.
func (m *Mailer) Close() {
	close(m.jobs)
	<-m.done
}

func (m *Mailer) deliver(job mailJob) {
	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if err = m.send([]string{job.to}, job.subject, job.body); err == nil {
			return
		}
		log.Printf("Mail attempt %d/%d to %s failed: %v", attempt, m.maxAttempts, job.to, err)
		if attempt < m.maxAttempts {
			time.Sleep(m.backoff)
		}
	}
	log.Printf("Giving up on email to %s after %d attempts: %v", job.to, m.maxAttempts, err)
}

// Enqueue hands a message to the background worker. It never blocks; if
// the queue is full the message is dropped with a log line, matching the
// best-effort delivery contract.
func (m *Mailer) Enqueue(to, subject, body string) {
	select {
	case m.jobs <- mailJob{to: to, subject: subject, body: body}:
	default:
		log.Printf("Mail queue full, dropping email to %s", to)
	}
}

// EnqueueVerificationCode queues the email-verification message.
func (m *Mailer) EnqueueVerificationCode(to, code string) {
	subject, body := utils.VerificationCodeEmail(code)
	m.Enqueue(to, subject, body)
}

// EnqueuePasswordResetCode queues the password-reset message.
func (m *Mailer) EnqueuePasswordResetCode(to, code string) {
	subject, body := utils.PasswordResetCodeEmail(code)
	m.Enqueue(to, subject, body)
}
