package services

import (
	"context"
	"fmt"

	"gomodules.xyz/notify/smtp"
)

type EmailOptions struct {
	Host               string `json:"host"`
	Port               int    `json:"port"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	From               string `json:"from"`
}

type emailService struct {
	opts EmailOptions
}

func NewEmailService(opts EmailOptions) NotificationService {
	return &emailService{opts: opts}
}

// Send gives up when ctx is done. The SMTP client has no context support, so a
// stalled dial or handshake is left to finish in the background.
func (s *emailService) Send(ctx context.Context, notification Notification, dest Destination) error {
	mailer := smtp.New(smtp.Options{
		From:               s.opts.From,
		Host:               s.opts.Host,
		Port:               s.opts.Port,
		InsecureSkipVerify: s.opts.InsecureSkipVerify,
		Password:           s.opts.Password,
		Username:           s.opts.Username,
	}).WithSubject(notification.Title).WithBody(notification.Body).To(dest.Recipient)

	done := make(chan error, 1)
	go func() {
		done <- mailer.Send()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("email to %s: %w", dest.Recipient, ctx.Err())
	}
}
