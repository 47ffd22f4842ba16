// Package mail sends transactional email through SendGrid. When no API key
// is configured the client becomes a logging no-op so checkout keeps
// working in development.
package mail

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Client struct {
	apiKey   string
	from     string
	fromName string
}

// NewFromEnv reads SENDGRID_API_KEY and MAIL_FROM.
func NewFromEnv() *Client {
	return &Client{
		apiKey:   os.Getenv("SENDGRID_API_KEY"),
		from:     os.Getenv("MAIL_FROM"),
		fromName: "Pastries with Love",
	}
}

func NewClient(apiKey, from, fromName string) *Client {
	return &Client{apiKey: apiKey, from: from, fromName: fromName}
}

func (c *Client) Send(to, subject, body string) error {
	if c.apiKey == "" || c.from == "" {
		log.Printf("📭 Mail disabled, skipping %q to %s", subject, to)
		return nil
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(c.fromName, c.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	response, err := sendgrid.NewSendClient(c.apiKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	log.Printf("📬 Mail sent: status=%d to=%s subject=%s", response.StatusCode, to, subject)
	return nil
}
