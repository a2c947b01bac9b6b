// Package mail implements transactional email over an SMTP relay.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"

	"go.uber.org/fx"
)

const defaultSendTimeout = 15 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// smtpMailer implements the service.Mailer interface on a plain SMTP relay
// with STARTTLS.
type smtpMailer struct {
	cfg    *config.MailConfig
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(params Params) (service.Mailer, error) {
	if params.Config.Mail == nil || params.Config.Mail.Host == "" {
		return nil, errors.New("mail config must be provided")
	}

	return &smtpMailer{
		cfg:    params.Config.Mail,
		logger: params.Logger,
	}, nil
}

// SendRegistrationReceived confirms to the applicant that the application
// entered the review queue.
func (m *smtpMailer) SendRegistrationReceived(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWe received your application for %s. Our team reviews every application manually; you will hear from us once a decision is made.\r\n",
		req.FullName, req.CompanyName,
	)

	return m.send(ctx, req.Email, "We received your vendor application", body)
}

// SendAdminReviewAlert tells the review team a new application is waiting.
func (m *smtpMailer) SendAdminReviewAlert(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}

	body := fmt.Sprintf(
		"A new vendor application is waiting for review.\r\n\r\nCompany: %s\r\nApplicant: %s <%s>\r\nCity: %s\r\nRequest ID: %s\r\n",
		req.CompanyName, req.FullName, req.Email, req.City, req.ID,
	)

	return m.send(ctx, m.cfg.AdminEmail, "New vendor application: "+req.CompanyName, body)
}

// SendApprovalWelcome delivers the account credentials note and the trial
// terms to a freshly approved vendor.
func (m *smtpMailer) SendApprovalWelcome(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error {
	storefront := ""
	if user.VendorProfile != nil && m.cfg.BaseURL != "" {
		storefront = fmt.Sprintf("\r\nYour storefront: %s/store/%s\r\n", strings.TrimRight(m.cfg.BaseURL, "/"), user.VendorProfile.Slug)
	}

	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour vendor application has been approved. You can log in with the email and password you registered with.\r\n%s\r\nYour premium trial runs until %s. No charge happens before you choose to upgrade.\r\n",
		user.Name, storefront, sub.EndDate.Format("2 January 2006"),
	)

	return m.send(ctx, user.Email, "Welcome aboard - your store is live", body)
}

// SendApprovalSummary recaps for the review team what an approval created.
func (m *smtpMailer) SendApprovalSummary(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error {
	if m.cfg.AdminEmail == "" {
		return nil
	}

	storefront := ""
	if user.VendorProfile != nil {
		storefront = user.VendorProfile.Slug
	}

	body := fmt.Sprintf(
		"A vendor application was approved and provisioned.\r\n\r\nVendor: %s <%s>\r\nStorefront: %s\r\nTrial ends: %s\r\n",
		user.Name, user.Email, storefront, sub.EndDate.Format("2 January 2006"),
	)

	return m.send(ctx, m.cfg.AdminEmail, "Vendor approved: "+user.Name, body)
}

// SendRejectionNotice informs the applicant of a rejection and the reason.
func (m *smtpMailer) SendRejectionNotice(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWe reviewed your application for %s and unfortunately cannot approve it at this time.\r\n\r\nReason: %s\r\n\r\nYou are welcome to apply again with updated details.\r\n",
		req.FullName, req.CompanyName, req.RejectReason,
	)

	return m.send(ctx, req.Email, "An update on your vendor application", body)
}

// SendTrialExpiryNotice tells a vendor their trial has lapsed.
func (m *smtpMailer) SendTrialExpiryNotice(ctx context.Context, user *entity.User, sub *entity.VendorSubscription) error {
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour premium trial ended on %s. Upgrade from your dashboard to keep premium features; your store and data remain intact either way.\r\n",
		user.Name, sub.EndDate.Format("2 January 2006"),
	)

	return m.send(ctx, user.Email, "Your premium trial has ended", body)
}

// send assembles the RFC 5322 message and pushes it through the relay.
func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	fromHeader := m.cfg.FromAddress
	if m.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromAddress)
	}

	msg := strings.Join([]string{
		"From: " + fromHeader,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	if err := m.deliver(to, []byte(msg)); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	m.logger.LogAttrs(ctx, slog.LevelDebug, "Mail sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)

	return nil
}

// deliver speaks SMTP with connection deadlines so a stuck relay cannot hang
// the caller.
func (m *smtpMailer) deliver(to string, msg []byte) error {
	timeout := m.cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return errors.Wrap(err, "failed to dial SMTP relay")
	}
	// The deadline covers the whole exchange, not just the dial.
	_ = conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return errors.Wrap(err, "failed to open SMTP session")
	}
	defer func() { _ = client.Quit() }()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return errors.Wrap(err, "failed to start TLS")
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "failed to authenticate with SMTP relay")
		}
	}

	if err := client.Mail(m.cfg.FromAddress); err != nil {
		return errors.Wrap(err, "failed to set mail sender")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "failed to set mail recipient")
	}

	writer, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "failed to open mail body")
	}
	if _, err := writer.Write(msg); err != nil {
		return errors.Wrap(err, "failed to write mail body")
	}

	return writer.Close()
}
