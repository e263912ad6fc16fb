// Package mailer sends booking confirmation emails. Delivery is
// best-effort: callers fire it after the booking commits and never treat
// a send failure as a booking failure.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"cinex-backend/pkg/utils"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// BookingConfirmation carries everything the confirmation email renders.
type BookingConfirmation struct {
	To          string
	MovieTitle  string
	CinemaName  string
	ScreenName  string
	StartTime   time.Time
	SeatNumbers []string
	BookingRef  string
	TotalAmount float64
}

type Mailer interface {
	SendBookingConfirmation(data BookingConfirmation) error
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
	tmpl   *template.Template

	// devMode skips delivery and just logs when SMTP credentials are not
	// configured, so local setups work without a mail account.
	devMode bool
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config:  config,
		log:     log.With(zap.String("component", "mailer")),
		tmpl:    template.Must(template.New("confirmation").Parse(confirmationTemplate)),
		devMode: config.User == "" || config.Password == "",
	}
}

func (m *smtpMailer) SendBookingConfirmation(data BookingConfirmation) error {
	if data.To == "" {
		return fmt.Errorf("no contact email for booking %s", data.BookingRef)
	}

	body, err := m.render(data)
	if err != nil {
		return fmt.Errorf("render confirmation for booking %s: %w", data.BookingRef, err)
	}

	if m.devMode {
		m.log.Info("Dev mode, skipping email delivery",
			zap.String("to", data.To),
			zap.String("booking_ref", data.BookingRef),
		)
		return nil
	}

	subject := fmt.Sprintf("Booking Confirmation - %s", data.MovieTitle)
	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + data.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{data.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send confirmation for booking %s: %w", data.BookingRef, err)
	}

	m.log.Info("Confirmation email sent",
		zap.String("to", data.To),
		zap.String("booking_ref", data.BookingRef),
	)
	return nil
}

func (m *smtpMailer) render(data BookingConfirmation) (string, error) {
	// QR payload is the booking reference, scanned at the entrance.
	var qrDataURI string
	if png, err := qrcode.Encode(data.BookingRef, qrcode.Medium, 150); err == nil {
		qrDataURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
	} else {
		m.log.Warn("Failed to encode QR code", zap.Error(err), zap.String("booking_ref", data.BookingRef))
	}

	var buf bytes.Buffer
	err := m.tmpl.Execute(&buf, map[string]any{
		"MovieTitle":  data.MovieTitle,
		"CinemaName":  data.CinemaName,
		"ScreenName":  data.ScreenName,
		"Date":        data.StartTime.Format("Monday, January 2, 2006"),
		"Time":        data.StartTime.Format("3:04 PM"),
		"Seats":       strings.Join(data.SeatNumbers, ", "),
		"BookingRef":  data.BookingRef,
		"TotalAmount": fmt.Sprintf("%.2f", data.TotalAmount),
		"QRDataURI":   template.URL(qrDataURI),
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

const confirmationTemplate = `
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 10px;">
    <h2 style="color: #e50914; text-align: center;">Booking Confirmed!</h2>
    <p>Hello,</p>
    <p>Thank you for booking with CineX. Your tickets are confirmed.</p>

    <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
      <h3 style="margin-top: 0;">{{.MovieTitle}}</h3>
      <p><strong>Cinema:</strong> {{.CinemaName}} ({{.ScreenName}})</p>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p><strong>Time:</strong> {{.Time}}</p>
      <p><strong>Seats:</strong> {{.Seats}}</p>
      <p><strong>Booking ID:</strong> {{.BookingRef}}</p>
      <p><strong>Total Amount:</strong> {{.TotalAmount}}</p>
    </div>

    {{if .QRDataURI}}
    <div style="text-align: center; margin: 20px 0;">
      <img src="{{.QRDataURI}}" alt="Booking QR Code" style="width: 150px; height: 150px;" />
      <p style="font-size: 12px; color: #777;">Present this QR code at the cinema entrance.</p>
    </div>
    {{end}}

    <p>Enjoy the show!</p>
    <p style="font-size: 12px; color: #999;">The CineX Team</p>
  </div>
</body>
</html>
`
