package mailer

import (
	"strings"
	"testing"
)

func TestComposeAssignmentEmail(t *testing.T) {
	subject, body := ComposeAssignmentEmail("alice", "Mathematics Basics", 30, 100)

	if subject != "New Exam Assigned: Mathematics Basics" {
		t.Errorf("subject = %q", subject)
	}

	for _, want := range []string{
		"Hello alice",
		"Exam: Mathematics Basics",
		"Duration: 30 minutes",
		"Total Marks: 100",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
