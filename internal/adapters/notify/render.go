package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/okian/coursebook/internal/domain/model"
)

var bodyTemplate = template.Must(template.New("enrollment").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>New Course Enrollment</h2>
  <p><strong>Name:</strong> {{.Enrollment.FirstName}} {{.Enrollment.LastName}}</p>
  <p><strong>Email:</strong> {{.Enrollment.Email}}</p>
  <p><strong>Phone:</strong> {{.Enrollment.Phone}}</p>
  <p><strong>Course:</strong> {{.Enrollment.Course}}</p>
  {{- with .AwardingBody}}
  <p><strong>Awarding body:</strong> {{.}}</p>
  {{- end}}
  <p><strong>Previous Education:</strong> {{or .Enrollment.PreviousEducation "Not provided"}}</p>
  <p><strong>Message:</strong> {{or .Enrollment.Message "No message"}}</p>
  {{- with .Enrollment.HearAboutUs}}
  <p><strong>Heard about us:</strong> {{.}}</p>
  {{- end}}
  <p style="color: #888;">Reference {{.Reference}}</p>
</div>
`))

// RenderHTML renders the email body of n. Field values are escaped.
func RenderHTML(n model.Notification) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, n); err != nil {
		return "", fmt.Errorf("render notification %s: %w", n.Reference, err)
	}
	return buf.String(), nil
}
