package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"
)

// Client delivers account mail on behalf of the service.
type Client interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// SendFunc matches smtp.SendMail so tests can intercept delivery.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPClient implements Client over plain SMTP.
type SMTPClient struct {
	host     string
	port     int
	from     string
	username string
	password string
	baseURL  string
	send     SendFunc
	logger   *slog.Logger
}

// NewSMTPClient creates an SMTP mail client. baseURL is the public address
// of the application, used to build reset links.
func NewSMTPClient(host string, port int, from, username, password, baseURL string, logger *slog.Logger) *SMTPClient {
	return &SMTPClient{
		host:     host,
		port:     port,
		from:     from,
		username: username,
		password: password,
		baseURL:  strings.TrimRight(baseURL, "/"),
		send:     smtp.SendMail,
		logger:   logger,
	}
}

// SendPasswordReset mails a reset link carrying the token. net/smtp has no
// context support; the context is only checked before dialing.
func (c *SMTPClient) SendPasswordReset(ctx context.Context, to, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset?token=%s", c.baseURL, url.QueryEscape(token))
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", c.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Wachtwoord opnieuw instellen\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&msg, "Gebruik de onderstaande link om je wachtwoord opnieuw in te stellen:\r\n\r\n%s\r\n\r\nDe link is twee uur geldig.\r\n", link)

	var auth smtp.Auth
	if c.username != "" {
		auth = smtp.PlainAuth("", c.username, c.password, c.host)
	}

	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))
	if err := c.send(addr, auth, c.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	c.logger.Info("password reset mail sent", slog.String("to", to))
	return nil
}

// LogClient is used when no SMTP server is configured; it only logs that a
// reset was requested so local setups keep working.
type LogClient struct {
	logger *slog.Logger
}

// NewLogClient constructs LogClient.
func NewLogClient(logger *slog.Logger) *LogClient {
	return &LogClient{logger: logger}
}

// SendPasswordReset logs the reset request instead of mailing it.
func (c *LogClient) SendPasswordReset(ctx context.Context, to, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logger.Info("smtp not configured, reset token not mailed", slog.String("to", to))
	return nil
}
