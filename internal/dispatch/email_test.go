package dispatch

import (
	"strings"
	"testing"
	"time"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	c := Content{
		Subject:     "[ALERT] squid service down on host1",
		TextBody:    "plain body",
		HTMLBody:    "<html><body>rich body</body></html>",
		Correlation: "abc-123",
		At:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	msg, err := buildMessage("from@example.com", []string{"a@example.com", "b@example.com"}, c)
	if err != nil {
		t.Fatalf("buildMessage: %v", err)
	}
	s := string(msg)

	for _, want := range []string{
		"From: from@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: [ALERT] squid service down on host1\r\n",
		"X-Correlation-ID: abc-123\r\n",
		"Content-Type: multipart/alternative; boundary=",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Type: text/html; charset=UTF-8",
		"plain body",
		"rich body",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("message missing %q:\n%s", want, s)
		}
	}

	// Plain part must precede the HTML part.
	if strings.Index(s, "plain body") > strings.Index(s, "rich body") {
		t.Fatal("plain part should come before the html part")
	}
}
