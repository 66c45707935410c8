package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	emaildomain "briefdesk-backend/internal/email/domain"
)

// Labels stripped from the emitted label set; they are surfaced through
// dedicated fields or carry no signal.
var hiddenLabels = map[string]bool{
	"UNREAD":            true,
	"INBOX":             true,
	"CATEGORY_PERSONAL": true,
}

var senderRe = regexp.MustCompile(`^(.*?)\s*<(.+?)>$`)

// Service wraps the Gmail API for the authorized account.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) client(ctx context.Context, accessToken string) (*gmail.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	srv, err := gmail.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}
	return srv, nil
}

// FetchRecentEmails lists inbox message ids and fetches the full detail per
// id, sequentially in list order. Priority is left unset; the caller resolves
// it through the classifier.
func (s *Service) FetchRecentEmails(ctx context.Context, accessToken string, maxResults int64) ([]emaildomain.Email, error) {
	srv, err := s.client(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	list, err := srv.Users.Messages.List("me").
		Q("in:inbox").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %v", err)
	}

	emails := make([]emaildomain.Email, 0, len(list.Messages))
	for _, msg := range list.Messages {
		detail, err := srv.Users.Messages.Get("me", msg.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to fetch message %s: %v", msg.Id, err)
		}
		emails = append(emails, parseMessage(detail))
	}
	return emails, nil
}

func parseMessage(detail *gmail.Message) emaildomain.Email {
	var from, subject, date string
	if detail.Payload != nil {
		for _, h := range detail.Payload.Headers {
			switch h.Name {
			case "From", "from":
				from = h.Value
			case "Subject", "subject":
				subject = h.Value
			case "Date", "date":
				date = h.Value
			}
		}
	}
	if subject == "" {
		subject = "No Subject"
	}

	sender, senderEmail := ParseSender(from)

	unread := false
	labels := make([]string, 0, len(detail.LabelIds))
	for _, l := range detail.LabelIds {
		if l == "UNREAD" {
			unread = true
		}
		if !hiddenLabels[l] {
			labels = append(labels, l)
		}
	}

	ts := time.Now()
	if date != "" {
		if t, err := parseDateHeader(date); err == nil {
			ts = t
		}
	}

	return emaildomain.Email{
		ID:          detail.Id,
		Sender:      sender,
		SenderEmail: senderEmail,
		Subject:     subject,
		Preview:     detail.Snippet,
		Timestamp:   ts,
		Labels:      labels,
		Unread:      unread,
	}
}

// ParseSender splits a `"Name <addr>"` From header into display name and
// address, falling back to the raw header for both when no angle-bracket
// address is present.
func ParseSender(from string) (sender, senderEmail string) {
	if m := senderRe.FindStringSubmatch(from); m != nil {
		return m[1], m[2]
	}
	return from, from
}

func parseDateHeader(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, "Mon, 2 Jan 2006 15:04:05 -0700", "Mon, 2 Jan 2006 15:04:05 -0700 (MST)"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date header: %s", s)
}

// SendEmail builds a plain-text RFC 822 message and sends it through the
// authorized account.
func (s *Service) SendEmail(ctx context.Context, accessToken, to, subject, body string) error {
	srv, err := s.client(ctx, accessToken)
	if err != nil {
		return err
	}

	raw := fmt.Sprintf("Content-Type: text/plain; charset=\"UTF-8\"\nMIME-Version: 1.0\nTo: %s\nSubject: %s\n\n%s", to, subject, body)
	msg := &gmail.Message{
		Raw: base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(raw)),
	}

	if _, err := srv.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to send message: %v", err)
	}
	return nil
}
