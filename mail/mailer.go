// Package mail sends templated notification emails. Delivery is
// fire-and-forget: a failed send is logged and never propagated to the
// request that triggered it.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
)

// Email is one outbound notification.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Sender is the transport boundary. Tests substitute a synchronous stub and
// assert on attempted sends instead of real delivery.
type Sender interface {
	Send(email Email) error
}

// Dispatcher runs each send as a detached background task. Wait drains
// in-flight sends on shutdown and in tests.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, log *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, log: log}
}

func (d *Dispatcher) Dispatch(email Email) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sender.Send(email); err != nil {
			d.log.Error("email send failed", "to", email.To, "subject", email.Subject, "error", err)
		}
	}()
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     username,
	}
}

func (s *SMTPSender) Send(email Email) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: \"TNKR\" <%s>\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(email.HTML)

	return smtp.SendMail(addr, auth, s.from, []string{email.To}, []byte(msg.String()))
}
