package service

import (
	"context"
	"fmt"
	"strings"

	"usherhub/internal/entity"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers notification mail through Resend. With no API
// key it stays nil-safe at the wiring level: main passes a nil EmailSender
// and the services skip dispatch.
type ResendEmailSender struct {
	client     *resend.Client
	from       string
	adminEmail string
}

func NewResendEmailSender(apiKey string, from string, adminEmail string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	return &ResendEmailSender{
		client:     resend.NewClient(apiKey),
		from:       from,
		adminEmail: adminEmail,
	}
}

func (s *ResendEmailSender) SendWelcomeEmail(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	html := fmt.Sprintf(
		"<h1>Welcome %s!</h1><p>Your account has been created successfully.</p><p>Role: %s</p><p>Get ready to usher in excellence!</p>",
		user.Name, strings.ToUpper(string(user.Role)),
	)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{user.Email},
		Subject: "Welcome to UsherHub!",
		Html:    html,
		Text:    fmt.Sprintf("Welcome %s! Your account has been created successfully.", user.Name),
	}
	_, err := s.client.Emails.Send(params)
	return err
}

func (s *ResendEmailSender) SendRequestNotification(ctx context.Context, request *entity.Request, ushers []entity.User) error {
	if s.adminEmail == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	names := make([]string, 0, len(ushers))
	for _, u := range ushers {
		names = append(names, u.Name)
	}
	html := fmt.Sprintf(
		"<h2>New staffing request</h2><p>From: %s (%s)</p><p>Type: %s</p><p>Details: %s</p><p>Requested ushers: %s</p>",
		request.ClientName, request.ClientEmail, request.EventType, request.EventDetails,
		strings.Join(names, ", "),
	)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("New staffing request from %s", request.ClientName),
		Html:    html,
	}
	_, err := s.client.Emails.Send(params)
	return err
}
