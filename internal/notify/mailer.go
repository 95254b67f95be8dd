// Package notify sends console emails: new leave requests to approvers and
// password reset notices.
package notify

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Name string
	Data []byte
}

type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SESMailer composes a MIME message and sends it through SES.
type SESMailer struct {
	client sesiface.SESAPI
	from   string
}

func NewSESMailer(client sesiface.SESAPI, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	contextLogger := log.WithContext(ctx)

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	for _, a := range msg.Attachments {
		data := a.Data
		gm.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	var emailRaw bytes.Buffer
	if _, err := gm.WriteTo(&emailRaw); err != nil {
		contextLogger.WithError(err).Error("Error when writing email data")
		return err
	}

	emailParams := &ses.SendRawEmailInput{
		Source:     aws.String(m.from),
		RawMessage: &ses.RawMessage{Data: emailRaw.Bytes()},
	}
	emailParams.SetDestinations(aws.StringSlice(msg.To))

	if _, err := m.client.SendRawEmailWithContext(ctx, emailParams); err != nil {
		contextLogger.WithError(err).Error("Error when sending email")
		return err
	}
	contextLogger.WithField("subject", msg.Subject).Info("email sent")
	return nil
}

// LogMailer only logs messages. It is used when no sender address is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	log.WithContext(ctx).WithFields(log.Fields{
		"to":      strings.Join(msg.To, ","),
		"subject": msg.Subject,
	}).Info("email delivery disabled, message not sent")
	return nil
}

// Recipients splits a comma separated address list, dropping blanks.
func Recipients(list string) []string {
	var out []string
	for _, r := range strings.Split(list, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
