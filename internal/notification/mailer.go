package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
}

func (c SMTPConfig) IsConfigured() bool {
	return c.Host != ""
}

// SendFunc delivers a fully encoded message. Tests replace it.
type SendFunc func(cfg SMTPConfig, from string, to []string, msg []byte) error

// Mailer composes notifications and sends them over SMTP.
type Mailer struct {
	cfg      SMTPConfig
	composer *Composer
	send     SendFunc
	logger   *zap.Logger
}

func NewMailer(cfg SMTPConfig, composer *Composer, logger ...*zap.Logger) *Mailer {
	l := zap.L().Named("notification.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mailer")
	}
	return &Mailer{cfg: cfg, composer: composer, send: sendSMTP, logger: l}
}

// WithSendFunc swaps the SMTP transport.
func (m *Mailer) WithSendFunc(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

func (m *Mailer) Dispatch(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.composer.Compose(n)
	if errors.Is(err, ErrNoRecipient) {
		m.logger.Warn("overstay reminder has no recipient",
			zap.String("record_id", n.Subject.RecordID),
			zap.String("record_kind", n.Subject.RecordKind),
		)
		return nil
	}
	if err != nil {
		return &DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: err}
	}

	raw, err := Encode(msg)
	if err != nil {
		return &DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: err}
	}

	if err := m.send(m.cfg, msg.From, msg.Recipients(), raw); err != nil {
		return &DispatchError{Kind: n.Kind, RecordID: n.Subject.RecordID, Err: err}
	}

	m.logger.Info("notification sent",
		zap.String("type", string(n.Kind)),
		zap.String("record_id", n.Subject.RecordID),
		zap.Strings("to", msg.To),
	)
	return nil
}

// Encode renders msg as a multipart/alternative RFC 5322 message.
func Encode(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	headers := []string{
		"From: " + msg.From,
		"To: " + strings.Join(msg.To, ", "),
	}
	if len(msg.Cc) > 0 {
		headers = append(headers, "Cc: "+strings.Join(msg.Cc, ", "))
	}
	headers = append(headers,
		"Subject: "+mime.QEncoding.Encode("utf-8", msg.Subject),
		"Date: "+time.Now().Format(time.RFC1123Z),
		"Message-ID: <"+uuid.NewString()+"@vms>",
		"MIME-Version: 1.0",
	)

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		headers = append(headers, k+": "+msg.Headers[k])
	}
	headers = append(headers, "Content-Type: multipart/alternative; boundary="+mw.Boundary())

	var out bytes.Buffer
	out.WriteString(strings.Join(headers, "\r\n"))
	out.WriteString("\r\n\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, fmt.Errorf("create part: %w", err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	out.Write(buf.Bytes())
	return out.Bytes(), nil
}

// sendSMTP uses implicit TLS on port 465 and STARTTLS otherwise.
func sendSMTP(cfg SMTPConfig, from string, to []string, msg []byte) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}
	addr := cfg.Host + ":" + cfg.Port

	if cfg.Port == "465" {
		return sendImplicitTLS(cfg, addr, from, to, msg)
	}

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, from, to, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

func sendImplicitTLS(cfg SMTPConfig, addr, from string, to []string, msg []byte) (err error) {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := c.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if cfg.User != "" {
		if err := c.Auth(smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return nil
}
