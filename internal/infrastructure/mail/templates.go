package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email bodies are rendered from embedded templates; the data is always
// plain user/task fields, escaped by html/template.

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<html>
  <body>
    <h2>Welcome, {{.Name}}!</h2>
    <p>Your account has been created. You can now log in and start
    tracking your tasks.</p>
  </body>
</html>`))

var assignedTmpl = template.Must(template.New("assigned").Parse(`
<html>
  <body>
    <h2>New task assigned</h2>
    <p>Hi {{.Name}},</p>
    <p>The task <strong>{{.Title}}</strong> has been assigned to you.</p>
  </body>
</html>`))

var completedTmpl = template.Must(template.New("completed").Parse(`
<html>
  <body>
    <h2>Task completed</h2>
    <p>The task <strong>{{.Title}}</strong> (id {{.TaskID}}) has been
    completed by {{.Name}}.</p>
  </body>
</html>`))

type templateData struct {
	Name   string
	Title  string
	TaskID string
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}
