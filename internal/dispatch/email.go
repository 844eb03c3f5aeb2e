package dispatch

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"context"
)

type EmailConfig struct {
	Server   string
	Port     int
	UseTLS   bool
	Username string
	Password string
	From     string
	To       []string
	Timeout  time.Duration
}

// EmailTransport sends multipart (plain + HTML) mail over SMTP.
type EmailTransport struct {
	cfg EmailConfig
}

func NewEmail(cfg EmailConfig) *EmailTransport {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &EmailTransport{cfg: cfg}
}

func (t *EmailTransport) Name() string { return "smtp" }

func (t *EmailTransport) Send(ctx context.Context, c Content) error {
	cfg := t.cfg
	addr := net.JoinHostPort(cfg.Server, strconv.Itoa(cfg.Port))

	d := net.Dialer{Timeout: cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	// One deadline for the whole SMTP conversation.
	_ = conn.SetDeadline(time.Now().Add(cfg.Timeout))

	cl, err := smtp.NewClient(conn, cfg.Server)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer cl.Close()

	if cfg.UseTLS {
		if err := cl.StartTLS(&tls.Config{ServerName: cfg.Server}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if cfg.Username != "" && cfg.Password != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Server)
		if err := cl.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := cl.Mail(cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range cfg.To {
		if err := cl.Rcpt(strings.TrimSpace(rcpt)); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := cl.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg, err := buildMessage(cfg.From, cfg.To, c)
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return cl.Quit()
}

// buildMessage renders a multipart/alternative MIME message with the plain
// part first so simple clients pick it up.
func buildMessage(from string, to []string, c Content) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	pw, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := pw.Write([]byte(c.TextBody)); err != nil {
		return nil, err
	}

	hw, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := hw.Write([]byte(c.HTMLBody)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", c.Subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", c.At.Format(time.RFC1123Z))
	fmt.Fprintf(&msg, "X-Correlation-ID: %s\r\n", c.Correlation)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
