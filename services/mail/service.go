package mail

import (
	"bytes"
	"fmt"
	htmlTemplate "html/template"

	"gatehouse/config"
	"gatehouse/services/logging"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Service struct {
	config *config.Config
	client *mail.Client
	logger *logging.Service
}

var (
	verificationBody = htmlTemplate.Must(htmlTemplate.New("verification").Parse(
		`<p>Click <a href="{{.Link}}">here</a> to confirm your email address. The link expires in {{.Expiry}}.</p>`))
	passwordResetBody = htmlTemplate.Must(htmlTemplate.New("password_reset").Parse(
		`<p>Click <a href="{{.Link}}">here</a> to reset your password. The link expires in {{.Expiry}}.</p>`))
	twoFactorBody = htmlTemplate.Must(htmlTemplate.New("two_factor").Parse(
		`<p>Your two factor code is: <strong>{{.Code}}</strong></p>`))
)

func NewService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	logger.Info("initializing mail service",
		zap.String("host", cfg.Mail.Host),
		zap.Int("port", cfg.Mail.Port),
		zap.String("encryption", cfg.Mail.Encryption),
		zap.String("from_address", cfg.Mail.FromAddress))

	if cfg.Mail.FromAddress == "" {
		return nil, fmt.Errorf("GATEHOUSE_MAIL_FROM_ADDRESS is required")
	}

	clientOpts := []mail.Option{
		mail.WithPort(cfg.Mail.Port),
	}

	if cfg.Mail.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Mail.Username))
	}
	if cfg.Mail.Password != "" {
		clientOpts = append(clientOpts, mail.WithPassword(cfg.Mail.Password))
	}

	switch cfg.Mail.Encryption {
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(cfg.Mail.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Service{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// SendVerificationEmail links to the new-verification page carrying the token.
func (s *Service) SendVerificationEmail(email, token string) error {
	link := fmt.Sprintf("%s/auth/new-verification?token=%s", s.config.App.URL, token)

	body, err := render(verificationBody, map[string]any{
		"Link":   link,
		"Expiry": s.config.Auth.VerificationExpiry.String(),
	})
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Confirm your email address: %s (expires in %s)", link, s.config.Auth.VerificationExpiry)
	return s.send(email, "Confirm your email", body, text)
}

// SendPasswordResetEmail links to the new-password page carrying the token.
func (s *Service) SendPasswordResetEmail(email, token string) error {
	link := fmt.Sprintf("%s/auth/new-password?token=%s", s.config.App.URL, token)

	body, err := render(passwordResetBody, map[string]any{
		"Link":   link,
		"Expiry": s.config.Auth.PasswordResetExpiry.String(),
	})
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Reset your password: %s (expires in %s)", link, s.config.Auth.PasswordResetExpiry)
	return s.send(email, "Reset your password", body, text)
}

// SendTwoFactorTokenEmail carries the raw code, no link.
func (s *Service) SendTwoFactorTokenEmail(email, code string) error {
	body, err := render(twoFactorBody, map[string]any{"Code": code})
	if err != nil {
		return err
	}

	return s.send(email, "Your two factor code", body, fmt.Sprintf("Your two factor code is: %s", code))
}

func render(tmpl *htmlTemplate.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.String(), nil
}

func (s *Service) send(to, subject, htmlBody, textBody string) error {
	message := mail.NewMsg()

	fromAddr := s.config.Mail.FromAddress
	if s.config.Mail.FromName != "" {
		fromAddr = fmt.Sprintf("%s <%s>", s.config.Mail.FromName, s.config.Mail.FromAddress)
	}
	if err := message.From(fromAddr); err != nil {
		return fmt.Errorf("failed to set FROM address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("failed to set TO address: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, textBody)
	message.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSend(message); err != nil {
		s.logger.Error("failed to send email",
			zap.Error(err),
			zap.String("subject", subject))
		return err
	}

	s.logger.Info("email sent", zap.String("subject", subject))
	return nil
}
