package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"moneta/internal/config"
)

// Mailer sends customer notifications over SMTP. A nil Mailer is valid
// and drops every message, so callers never need to guard.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New returns a Mailer, or nil when no SMTP host is configured.
func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	if m == nil || to == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SendLoanDecision notifies a client that a loan request was approved or rejected.
func (m *Mailer) SendLoanDecision(to string, loanID uint, approved bool) error {
	subject := "Your loan request was rejected"
	body := fmt.Sprintf("<p>Unfortunately loan request #%d was rejected.</p>", loanID)
	if approved {
		subject = "Your loan request was approved"
		body = fmt.Sprintf("<p>Loan #%d was approved. The funds have been credited to your account.</p>", loanID)
	}
	return m.send(to, subject, body)
}

// SendLoanPaid congratulates a client on fully repaying a loan.
func (m *Mailer) SendLoanPaid(to string, loanID uint) error {
	return m.send(to, "Loan fully repaid",
		fmt.Sprintf("<p>Loan #%d has been fully repaid. Thank you for banking with us.</p>", loanID))
}

// SendBlockNotice informs a user that their access was blocked or restored.
func (m *Mailer) SendBlockNotice(to string, blocked bool) error {
	if blocked {
		return m.send(to, "Account blocked",
			"<p>Your access has been blocked by an administrator. You may file an appeal at the next sign-in attempt.</p>")
	}
	return m.send(to, "Account unblocked", "<p>Your access has been restored.</p>")
}
