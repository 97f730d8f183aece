package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const (
	templateVerification = "verification"
	templateWelcome      = "welcome"
)

// templateData is passed to every mail template.
type templateData struct {
	Name    string
	Code    string
	Minutes int
	AppURL  string
}

const verificationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="background-color: #2196f3; color: white; padding: 20px; text-align: center;">Email Verification</h1>
    <h2>Hello {{.Name}}!</h2>
    <p>Thank you for signing up for Resume NER Parser. To complete your registration, please verify your email address using the code below:</p>
    <div style="background-color: #e3f2fd; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 3px;">{{.Code}}</div>
    <p><strong>Important:</strong> This verification code will expire in {{.Minutes}} minutes.</p>
    <p>If you didn't create an account with us, please ignore this email.</p>
    <p>Best regards,<br>Resume NER Parser Team</p>
    <p style="text-align: center; color: #666; font-size: 12px;">This is an automated email. Please do not reply to this message.</p>
  </div>
</body>
</html>`

const verificationText = `Hello {{.Name}}!

Thank you for signing up for Resume NER Parser. To complete your registration, please verify your email address using the code below:

Verification Code: {{.Code}}

Important: This verification code will expire in {{.Minutes}} minutes.

If you didn't create an account with us, please ignore this email.

Best regards,
Resume NER Parser Team
`

const welcomeHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="background-color: #4caf50; color: white; padding: 20px; text-align: center;">Welcome to Resume NER Parser!</h1>
    <h2>Hello {{.Name}}!</h2>
    <p>Congratulations! Your email has been successfully verified and your account is now active.</p>
    <h3>What you can do now:</h3>
    <ul>
      <li><strong>Upload Resume PDFs</strong> for automated analysis</li>
      <li><strong>Extract Entities</strong> such as names, skills and companies</li>
      <li><strong>View Results</strong> next to your original PDF</li>
    </ul>
    <p>Ready to get started? <a href="{{.AppURL}}" style="color: #2196f3;">Visit the application</a></p>
    <p>Best regards,<br>Resume NER Parser Team</p>
  </div>
</body>
</html>`

const welcomeText = `Hello {{.Name}}!

Congratulations! Your email has been successfully verified and your account is now active.

What you can do now:
- Upload Resume PDFs for automated analysis
- Extract Entities such as names, skills and companies
- View Results next to your original PDF

Ready to get started? Visit: {{.AppURL}}

Best regards,
Resume NER Parser Team
`

// templates holds the parsed HTML and plain text variants of each mail.
type templates struct {
	html map[string]*htmltemplate.Template
	text map[string]*texttemplate.Template
}

func newTemplates() *templates {
	t := &templates{
		html: map[string]*htmltemplate.Template{},
		text: map[string]*texttemplate.Template{},
	}
	t.add(templateVerification, verificationHTML, verificationText)
	t.add(templateWelcome, welcomeHTML, welcomeText)
	return t
}

// add panics on malformed templates; they are compiled into the binary.
func (t *templates) add(name, html, text string) {
	t.html[name] = htmltemplate.Must(htmltemplate.New(name).Parse(html))
	t.text[name] = texttemplate.Must(texttemplate.New(name).Parse(text))
}

// render executes both variants of the named template.
func (t *templates) render(name string, data templateData) (html, text string, err error) {
	h, ok := t.html[name]
	if !ok {
		return "", "", fmt.Errorf("template not found: %s", name)
	}
	var hb, tb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}
	if err := t.text[name].Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}
	return hb.String(), tb.String(), nil
}
