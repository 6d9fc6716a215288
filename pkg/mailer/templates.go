package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const welcomeSubject = "Welcome to NeuroCare"

var welcomeHTML = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family: sans-serif; color: #243b53;">
  <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Your NeuroCare account is ready. Track your mood, chat with your companion,
  and check in on your wellbeing whenever you need to.</p>
  <p>If you did not create this account, you can safely ignore this email.</p>
</body>
</html>`))

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err = welcomeHTML.Execute(&buf, map[string]any{"Name": data["Name"]}); err != nil {
			return "", "", "", err
		}
		text = "Welcome to NeuroCare! Your account is ready."
		return welcomeSubject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
