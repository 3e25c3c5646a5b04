// Package notify sends the plain-text notification mail that accompanies
// every successful sign-off.
package notify

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/pharmaops/pharmacy-signoff/internal/config"
	"github.com/pharmaops/pharmacy-signoff/internal/model"
)

// Mailer delivers sign-off notifications over SMTP to the fixed staff
// recipient list. A send failure is returned to the caller; the handler
// surfaces it as a server error rather than dropping it silently.
type Mailer struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUser,
		Password:   cfg.SMTPPass,
		From:       cfg.SMTPFrom,
		Recipients: cfg.NotifyRecipients,
	}
}

// SignoffRecorded composes and sends one mail summarizing the committed
// sign-off. Subject and body vary by checklist kind and by whether the
// submission overwrote an earlier record.
func (m *Mailer) SignoffRecorded(rec model.SignoffRecord, overwrote bool) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.Recipients...)
	msg.SetHeader("Subject", subjectFor(rec, overwrote))
	msg.SetBody("text/plain", bodyFor(rec, overwrote))

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

func subjectFor(rec model.SignoffRecord, overwrote bool) string {
	subject := fmt.Sprintf("%s checklist signed off for %s", titleKind(rec.Kind), rec.Date)
	if overwrote {
		subject = fmt.Sprintf("%s checklist sign-off amended for %s", titleKind(rec.Kind), rec.Date)
	}
	return subject
}

func bodyFor(rec model.SignoffRecord, overwrote bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The %s checklist for %s has been signed off.\n\n", rec.Kind, rec.Date)
	if overwrote {
		fmt.Fprintf(&b, "This submission replaced an earlier sign-off (overwrite %d of %d).\n\n",
			rec.OverwritesUsed, model.OverwriteCap)
	}
	if rec.ManagerName != nil {
		fmt.Fprintf(&b, "Manager: %s\n", *rec.ManagerName)
	}
	if rec.DeputyName != nil {
		fmt.Fprintf(&b, "Deputy: %s\n", *rec.DeputyName)
	}
	if rec.DirectorName != nil {
		fmt.Fprintf(&b, "Director: %s\n", *rec.DirectorName)
	}
	if rec.FridgeTemp != nil {
		fmt.Fprintf(&b, "Fridge temperature: %.1f C\n", *rec.FridgeTemp)
	}
	if rec.Notes != nil && *rec.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", *rec.Notes)
	}
	fmt.Fprintf(&b, "\nRecorded at %s.\n", rec.SignedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func titleKind(k model.ChecklistKind) string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
