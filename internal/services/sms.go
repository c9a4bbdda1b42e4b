package services

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioAPIBaseURL = "https://api.twilio.com"

// SMSSender delivers best-effort SMS notifications through Twilio. Send never
// returns an error: the booking state change it accompanies must not depend
// on the transport. Unconfigured sends and transport failures both report
// false, distinguished only in the logs.
type SMSSender struct {
	accountSID string
	authToken  string
	fromNumber string
	apiBaseURL string
	client     *http.Client
}

func NewSMSSender(accountSID string, authToken string, fromNumber string) *SMSSender {
	return &SMSSender{
		accountSID: strings.TrimSpace(accountSID),
		authToken:  strings.TrimSpace(authToken),
		fromNumber: strings.TrimSpace(fromNumber),
		apiBaseURL: twilioAPIBaseURL,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// Configured reports whether all three Twilio credentials are present.
// Absence of any one disables sending entirely.
func (sender *SMSSender) Configured() bool {
	return sender.accountSID != "" && sender.authToken != "" && sender.fromNumber != ""
}

// Send submits one message and reports whether the transport confirmed it.
// An empty destination or missing credentials is a no-op without network I/O.
func (sender *SMSSender) Send(toNumber string, body string) bool {
	toNumber = strings.TrimSpace(toNumber)
	if toNumber == "" {
		return false
	}
	if !sender.Configured() {
		log.Printf("sms: skipping send to %s, sender is not configured", toNumber)
		return false
	}

	if err := sender.submit(toNumber, body); err != nil {
		log.Printf("sms: send to %s failed: %v", toNumber, err)
		return false
	}
	return true
}

func (sender *SMSSender) submit(toNumber string, body string) error {
	values := url.Values{}
	values.Set("To", toNumber)
	values.Set("From", sender.fromNumber)
	values.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", sender.apiBaseURL, sender.accountSID)
	request, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.SetBasicAuth(sender.accountSID, sender.authToken)

	response, err := sender.client.Do(request)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		return fmt.Errorf("twilio status %d: %s", response.StatusCode, string(detail))
	}
	return nil
}

// CancellationSMSBody composes the boss-cancellation notification text.
func CancellationSMSBody(ownerFullName string, startAt time.Time) string {
	return fmt.Sprintf(
		"Hi %s, your appointment on %s has been canceled. If you'd like to reschedule, please reply or book again.",
		ownerFullName,
		startAt.Format("Jan 02, 2006 at 03:04 PM"),
	)
}
