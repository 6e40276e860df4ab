package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-project-marketplace/pkg/mailer"
	mailtpl "github.com/oksasatya/go-project-marketplace/pkg/mailer/templates"
)

// SubjectFor returns a fallback subject for jobs that carry no template.
func SubjectFor(job mailer.EmailJob) string {
	if job.Subject != "" {
		return job.Subject
	}
	switch strings.ToLower(job.Template) {
	case mailtpl.Welcome:
		return "Welcome to the marketplace"
	case mailtpl.ProjectPurchased:
		return "Your project has a new buyer"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail fills Email and RecipientEmail from job.To when missing.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
