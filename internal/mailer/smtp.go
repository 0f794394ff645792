// Package mailer provides the SMTP transport used to deliver outreach messages.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

const defaultTimeout = 30 * time.Second

// Envelope is one message to deliver.
type Envelope struct {
	From string
	To   []string
	Data []byte
}

// Transport delivers envelopes over a reusable connection.
type Transport interface {
	Connect(ctx context.Context) error
	Send(ctx context.Context, env Envelope) error
	Close() error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
	// ImplicitTLS dials TLS directly (port 465) instead of upgrading with STARTTLS.
	ImplicitTLS bool
}

// SMTP is a Transport backed by net/smtp.
type SMTP struct {
	cfg    Config
	client *smtp.Client
	conn   net.Conn
}

// NewSMTP creates an unconnected SMTP transport.
func NewSMTP(cfg Config) *SMTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Port == 465 {
		cfg.ImplicitTLS = true
	}
	return &SMTP{cfg: cfg}
}

func (s *SMTP) addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Connect ensures a live, authenticated connection. An existing connection
// that still answers NOOP is reused; otherwise a fresh one is opened.
func (s *SMTP) Connect(ctx context.Context) error {
	if s.client != nil {
		s.setDeadline(ctx)
		if err := s.client.Noop(); err == nil {
			return nil
		}
		s.drop()
	}

	dialer := net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr())
	if err != nil {
		return &TransportError{Op: "connect", Cause: err}
	}
	tlsConfig := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	if s.cfg.ImplicitTLS {
		conn = tls.Client(conn, tlsConfig)
	}
	s.conn = conn
	s.setDeadline(ctx)

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		s.conn = nil
		return &TransportError{Op: "connect", Cause: err}
	}
	s.client = client

	if !s.cfg.ImplicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				s.drop()
				return &TransportError{Op: "tls", Cause: err}
			}
		}
	}

	if s.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); !ok {
			s.drop()
			return &TransportError{Op: "auth", Cause: errors.New("server does not offer AUTH")}
		}
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			s.drop()
			return &TransportError{Op: "auth", Cause: err}
		}
	}
	return nil
}

// Send delivers one envelope on the current connection. A failed send drops
// the connection so the next Connect starts fresh.
func (s *SMTP) Send(ctx context.Context, env Envelope) error {
	if s.client == nil {
		return &TransportError{Op: "send", Cause: errors.New("not connected")}
	}
	if err := ctx.Err(); err != nil {
		return &TransportError{Op: "send", Cause: err}
	}
	s.setDeadline(ctx)

	if err := s.send(env); err != nil {
		s.drop()
		return &TransportError{Op: "send", Cause: err}
	}
	return nil
}

func (s *SMTP) send(env Envelope) error {
	if err := s.client.Mail(env.From); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	for _, rcpt := range env.To {
		if err := s.client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", rcpt, err)
		}
	}
	w, err := s.client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(env.Data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end DATA: %w", err)
	}
	return nil
}

// Close ends the session with QUIT, falling back to closing the socket.
func (s *SMTP) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Quit()
	if err != nil {
		err = s.client.Close()
	}
	s.client = nil
	s.conn = nil
	return err
}

func (s *SMTP) drop() {
	if s.client != nil {
		_ = s.client.Close()
	}
	s.client = nil
	s.conn = nil
}

func (s *SMTP) setDeadline(ctx context.Context) {
	if s.conn == nil {
		return
	}
	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = s.conn.SetDeadline(deadline)
}

// Probe connects, authenticates and quits. It is used to test settings.
func Probe(ctx context.Context, cfg Config) error {
	t := NewSMTP(cfg)
	if err := t.Connect(ctx); err != nil {
		return err
	}
	return t.Close()
}
