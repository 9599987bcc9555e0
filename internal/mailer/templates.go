package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

var shortlistTmpl = template.Must(template.New("shortlist").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background:#f6f8fb; padding:24px;">
  <table role="presentation" width="100%" style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px;">
    <tr><td>
      <h2 style="color:#1f2937;">Congratulations, {{.Name}}!</h2>
      <p>We are pleased to let you know that you have been <strong>shortlisted</strong> for the {{.DomainLabel}} domain of HRCC recruitments.</p>
      {{if .RegNo}}<p>Registration number: <strong>{{.RegNo}}</strong></p>{{end}}
      <p>Further instructions about the next round will follow shortly. Keep an eye on your inbox.</p>
      <p style="color:#6b7280;">HRCC Recruitments</p>
    </td></tr>
  </table>
</body>
</html>`))

var taskTmpl = template.Must(template.New("task").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background:#f6f8fb; padding:24px;">
  <table role="presentation" width="100%" style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px;">
    <tr><td>
      <p>Hi {{.Name}},</p>
      {{range .Paragraphs}}<p>{{.}}</p>
      {{end}}
      <h3 style="color:#1f2937;">{{.TaskTitle}}</h3>
      <p>{{.TaskDescription}}</p>
      {{if .Deadline}}<p>Deadline: <strong>{{.Deadline}}</strong></p>{{end}}
      <p style="color:#6b7280;">HRCC Recruitments</p>
    </td></tr>
  </table>
</body>
</html>`))

// ShortlistData fills the shortlist notification.
type ShortlistData struct {
	Name        string
	RegNo       string
	DomainLabel string
}

// RenderShortlist renders the shortlist notification body.
func RenderShortlist(d ShortlistData) (string, error) {
	var buf bytes.Buffer
	if err := shortlistTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render shortlist email: %w", err)
	}
	return buf.String(), nil
}

// TaskData fills the task announcement.
type TaskData struct {
	Name            string
	Body            string
	TaskTitle       string
	TaskDescription string
	Deadline        *time.Time
}

// RenderTask renders an admin-authored body followed by the task details.
// The body is plain text; blank lines separate paragraphs.
func RenderTask(d TaskData) (string, error) {
	view := struct {
		Name            string
		Paragraphs      []string
		TaskTitle       string
		TaskDescription string
		Deadline        string
	}{
		Name:            d.Name,
		Paragraphs:      paragraphs(d.Body),
		TaskTitle:       d.TaskTitle,
		TaskDescription: d.TaskDescription,
	}
	if d.Deadline != nil {
		view.Deadline = d.Deadline.UTC().Format("02 Jan 2006 15:04 MST")
	}

	var buf bytes.Buffer
	if err := taskTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render task email: %w", err)
	}
	return buf.String(), nil
}

func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
