// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// EventDetails describes the event for email templates. Populated from
// configuration so the portal can be reused across events.
type EventDetails struct {
	Name  string
	Date  string // e.g., "Saturday, 14 March 2026"
	Venue string
	City  string
}

// ConfirmationEmailData holds data for the registration confirmation email.
type ConfirmationEmailData struct {
	GuestName  string
	AccessCode string
	Event      EventDetails
}

// BuildConfirmationEmail creates the registration confirmation with both
// HTML and text bodies. To is set by the caller.
func BuildConfirmationEmail(data ConfirmationEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your %s registration is confirmed", data.Event.Name),
		TextBody: buildConfirmationText(data),
		HTMLBody: buildConfirmationHTML(data),
	}
}

func buildConfirmationText(data ConfirmationEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Dear %s,\n\n", data.GuestName))
	buf.WriteString(fmt.Sprintf("Your registration for %s is confirmed.\n\n", data.Event.Name))
	buf.WriteString(fmt.Sprintf("Your access code is: %s\n\n", data.AccessCode))
	buf.WriteString("Present this code at the check-in desk on arrival.\n\n")
	if data.Event.Date != "" {
		buf.WriteString(fmt.Sprintf("Date: %s\n", data.Event.Date))
	}
	if data.Event.Venue != "" {
		buf.WriteString(fmt.Sprintf("Venue: %s", data.Event.Venue))
		if data.Event.City != "" {
			buf.WriteString(", " + data.Event.City)
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\nWe look forward to seeing you.\n")
	return buf.String()
}

func buildConfirmationHTML(data ConfirmationEmailData) string {
	tmpl := template.Must(template.New("confirmation").Parse(confirmationHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// WelcomeEmailData holds data for the on-arrival welcome email.
type WelcomeEmailData struct {
	GuestName string
	Event     EventDetails
}

// BuildWelcomeEmail creates the welcome email sent after a guest is
// checked in at the venue. To is set by the caller.
func BuildWelcomeEmail(data WelcomeEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Welcome to %s", data.Event.Name),
		TextBody: buildWelcomeText(data),
		HTMLBody: buildWelcomeHTML(data),
	}
}

func buildWelcomeText(data WelcomeEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Dear %s,\n\n", data.GuestName))
	buf.WriteString(fmt.Sprintf("Welcome to %s. You are checked in.\n\n", data.Event.Name))
	if data.Event.Venue != "" {
		buf.WriteString(fmt.Sprintf("Venue: %s", data.Event.Venue))
		if data.Event.City != "" {
			buf.WriteString(", " + data.Event.City)
		}
		buf.WriteString("\n\n")
	}
	buf.WriteString("Enjoy the event.\n")
	return buf.String()
}

func buildWelcomeHTML(data WelcomeEmailData) string {
	tmpl := template.Must(template.New("welcome").Parse(welcomeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// AdminWelcomeEmailData holds data for the new-admin welcome email.
type AdminWelcomeEmailData struct {
	AdminName    string
	Role         string
	PortalURL    string
	TempPassword string
	Event        EventDetails
}

// BuildAdminWelcomeEmail creates the welcome email sent when an admin
// account is created. To is set by the caller.
func BuildAdminWelcomeEmail(data AdminWelcomeEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("You have been added to the %s portal", data.Event.Name),
		TextBody: buildAdminWelcomeText(data),
		HTMLBody: buildAdminWelcomeHTML(data),
	}
}

func buildAdminWelcomeText(data AdminWelcomeEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hello %s,\n\n", data.AdminName))
	buf.WriteString(fmt.Sprintf("An account has been created for you on the %s portal with the %s role.\n\n", data.Event.Name, data.Role))
	if data.PortalURL != "" {
		buf.WriteString(fmt.Sprintf("Sign in at: %s\n", data.PortalURL))
	}
	if data.TempPassword != "" {
		buf.WriteString(fmt.Sprintf("Your temporary password is: %s\n", data.TempPassword))
		buf.WriteString("Please change it after your first sign-in.\n")
	}
	buf.WriteString("\nIf you were not expecting this email, contact the event organizers.\n")
	return buf.String()
}

func buildAdminWelcomeHTML(data AdminWelcomeEmailData) string {
	tmpl := template.Must(template.New("adminwelcome").Parse(adminWelcomeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const confirmationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Registration Confirmed</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.Event.Name}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Dear {{.GuestName}}, your registration is confirmed. Your access code is:
              </p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 32px; font-weight: 700; letter-spacing: 8px; color: #1f2937; font-family: 'Courier New', monospace;">{{.AccessCode}}</span>
              </div>
              <p style="margin: 0 0 8px; font-size: 14px; color: #6b7280;">
                Present this code at the check-in desk on arrival.
              </p>
              {{if .Event.Date}}
              <p style="margin: 0 0 4px; font-size: 14px; color: #374151;"><strong>Date:</strong> {{.Event.Date}}</p>
              {{end}}
              {{if .Event.Venue}}
              <p style="margin: 0; font-size: 14px; color: #374151;"><strong>Venue:</strong> {{.Event.Venue}}{{if .Event.City}}, {{.Event.City}}{{end}}</p>
              {{end}}
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; border-top: 1px solid #e5e7eb; text-align: center;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af;">
                We look forward to seeing you.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const welcomeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.Event.Name}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                Dear {{.GuestName}}, welcome! You are checked in.
              </p>
              {{if .Event.Venue}}
              <p style="margin: 0; font-size: 14px; color: #374151;"><strong>Venue:</strong> {{.Event.Venue}}{{if .Event.City}}, {{.Event.City}}{{end}}</p>
              {{end}}
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; border-top: 1px solid #e5e7eb; text-align: center;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af;">
                Enjoy the event.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const adminWelcomeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Account Created</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.Event.Name}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hello {{.AdminName}}, an account has been created for you on the portal with the <strong>{{.Role}}</strong> role.
              </p>
              {{if .TempPassword}}
              <p style="margin: 0 0 16px; font-size: 14px; color: #374151;">
                Your temporary password is <span style="font-family: 'Courier New', monospace;">{{.TempPassword}}</span>. Please change it after your first sign-in.
              </p>
              {{end}}
              {{if .PortalURL}}
              <div style="text-align: center; margin-bottom: 8px;">
                <a href="{{.PortalURL}}" style="display: inline-block; background-color: #4f46e5; color: #ffffff; font-size: 16px; font-weight: 600; text-decoration: none; padding: 12px 32px; border-radius: 6px;">Sign In</a>
              </div>
              {{end}}
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; border-top: 1px solid #e5e7eb; text-align: center;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af;">
                If you were not expecting this email, contact the event organizers.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
