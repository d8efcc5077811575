package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"taxsage/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender for review notifications.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendReviewRequested(ctx context.Context, email port.ReviewEmail) error {
	subject := fmt.Sprintf("New ITR review request for AY %s", email.AssessmentYear)
	text := fmt.Sprintf("Hi %s,\n\n%s has requested your review of their income tax return for assessment year %s.\n\nOpen your dashboard to accept or decline:\n%s/reviews\n\nTaxSage Team",
		email.ToName, email.TaxpayerName, email.AssessmentYear, s.frontendURL)
	html := buildReviewHTML("New review request",
		fmt.Sprintf("%s has requested your review of their income tax return for assessment year %s.", email.TaxpayerName, email.AssessmentYear),
		s.frontendURL+"/reviews", "Open dashboard", email.ToName)
	return s.send(ctx, email.ToEmail, subject, html, text)
}

func (s *sesSender) SendReviewAccepted(ctx context.Context, email port.ReviewEmail) error {
	subject := fmt.Sprintf("Your ITR review for AY %s was accepted", email.AssessmentYear)
	text := fmt.Sprintf("Hi %s,\n\nCA %s has accepted your review request for assessment year %s and will look at your return shortly.\n\n%s/reviews\n\nTaxSage Team",
		email.ToName, email.CAName, email.AssessmentYear, s.frontendURL)
	html := buildReviewHTML("Review accepted",
		fmt.Sprintf("CA %s has accepted your review request for assessment year %s.", email.CAName, email.AssessmentYear),
		s.frontendURL+"/reviews", "View status", email.ToName)
	return s.send(ctx, email.ToEmail, subject, html, text)
}

func (s *sesSender) SendReviewRejected(ctx context.Context, email port.ReviewEmail) error {
	subject := fmt.Sprintf("Your ITR review request for AY %s was declined", email.AssessmentYear)
	text := fmt.Sprintf("Hi %s,\n\nCA %s is unable to take up your review request for assessment year %s. You can ask another CA from the marketplace.\n\n%s/cas\n\nTaxSage Team",
		email.ToName, email.CAName, email.AssessmentYear, s.frontendURL)
	html := buildReviewHTML("Review request declined",
		fmt.Sprintf("CA %s is unable to take up your review request for assessment year %s. You can ask another CA from the marketplace.", email.CAName, email.AssessmentYear),
		s.frontendURL+"/cas", "Browse CAs", email.ToName)
	return s.send(ctx, email.ToEmail, subject, html, text)
}

func (s *sesSender) SendReviewCompleted(ctx context.Context, email port.ReviewEmail) error {
	subject := fmt.Sprintf("Your ITR review for AY %s is complete", email.AssessmentYear)
	text := fmt.Sprintf("Hi %s,\n\nCA %s has completed the review of your return for assessment year %s. Read the notes and proceed to file.\n\n%s/filings\n\nTaxSage Team",
		email.ToName, email.CAName, email.AssessmentYear, s.frontendURL)
	html := buildReviewHTML("Review complete",
		fmt.Sprintf("CA %s has completed the review of your return for assessment year %s. Read the notes and proceed to file.", email.CAName, email.AssessmentYear),
		s.frontendURL+"/filings", "View filing", email.ToName)
	return s.send(ctx, email.ToEmail, subject, html, text)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewHTML(heading, message, actionURL, actionLabel, name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>Hi %s,</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F766E; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">TaxSage - ITR Filing Assistant</p>
</body>
</html>`, heading, name, message, actionURL, actionLabel)
}
