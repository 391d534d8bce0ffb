package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// メール送信の約束。送信失敗は呼び出し側で握りつぶす前提。
type Mailer interface {
	Send(to string, subject string, body string) error
}

// net/smtpで送るMailer
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

func (m *SMTPMailer) Send(to string, subject string, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
}

// ベストエフォート送信。失敗はログに残して無視する。
// 登録やお問い合わせの本処理をメール障害で失敗させない。
func SendBestEffort(logger *zap.Logger, mailer Mailer, to string, subject string, body string) {
	if to == "" {
		return
	}
	if err := mailer.Send(to, subject, body); err != nil {
		logger.Warn("mail send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
