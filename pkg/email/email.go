package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type OTPEmailData struct {
	Name string
	OTP  string
}

type PasswordResetData struct {
	Name      string
	ResetLink string
}

type BookingDecisionData struct {
	Name          string
	PropertyTitle string
	Approved      bool
	OwnerName     string
	OwnerEmail    string
	OwnerPhone    string
}

type ListingPaymentData struct {
	Name         string
	PlanName     string
	Amount       float64
	Currency     string
	MaxListings  int
	DurationDays int
	PaidAt       time.Time
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

func (s *EmailService) SendOTPEmail(to, name, otp string) error {
	data := OTPEmailData{Name: name, OTP: otp}
	return s.sendTemplateEmail(to, "Your Kiraya verification code", "otp.html", data)
}

func (s *EmailService) SendPasswordResetEmail(to, name, resetLink string) error {
	data := PasswordResetData{Name: name, ResetLink: resetLink}
	return s.sendTemplateEmail(to, "Reset your Kiraya password", "password_reset.html", data)
}

func (s *EmailService) SendBookingDecisionEmail(to string, data BookingDecisionData) error {
	subject := "Your booking request was rejected"
	if data.Approved {
		subject = "Your booking request was approved!"
	}
	return s.sendTemplateEmail(to, subject, "booking_decision.html", data)
}

func (s *EmailService) SendListingPaymentEmail(to string, data ListingPaymentData) error {
	return s.sendTemplateEmail(to, "Your listing plan is active", "listing_payment.html", data)
}
