package mail

import "fmt"

func subjectFor(domain, inviterName, subjectName string) string {
	switch domain {
	case "skills":
		return fmt.Sprintf("%s asked you to verify a skill", inviterName)
	case "employment":
		return fmt.Sprintf("%s asked you to verify their job experience", inviterName)
	case "client_project":
		return fmt.Sprintf("%s asked you to verify a client project", inviterName)
	case "project":
		return fmt.Sprintf("Join the project %s", subjectName)
	case "team":
		return fmt.Sprintf("Join the team %s", subjectName)
	default:
		return fmt.Sprintf("%s wants to connect with you", inviterName)
	}
}

func templateFor(domain string) string {
	switch domain {
	case "skills", "employment", "client_project":
		return verificationEmailTemplate
	case "project", "team":
		return membershipEmailTemplate
	default:
		return connectionEmailTemplate
	}
}

const verificationEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .contact { margin-top: 20px; font-size: 14px; color: #555; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Verification request</h1>
        <p>Hi {{.Name}},</p>
        <p>{{.InviterName}} asked you to verify {{.SubjectName}} on their Provely profile.</p>
        {{if .Comment}}<p>&ldquo;{{.Comment}}&rdquo;</p>{{end}}
        <p><a href="{{.VerifyURL}}" class="button">Review and verify</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.VerifyURL}}</p>
        <div class="contact">
            <p>Questions? Reach {{.InviterName}} at {{.InviterEmail}}{{if .InviterPhone}} or {{.InviterPhone}}{{end}}.</p>
        </div>
        <div class="footer">
            <p>If you don't know this person, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`

const membershipEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .contact { margin-top: 20px; font-size: 14px; color: #555; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>You're invited to {{.SubjectName}}</h1>
        <p>Hi {{.Name}},</p>
        <p>{{.InviterName}} invited you to join {{.SubjectName}} on Provely.</p>
        {{if .Comment}}<p>&ldquo;{{.Comment}}&rdquo;</p>{{end}}
        <p><a href="{{.VerifyURL}}" class="button">View invitation</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.VerifyURL}}</p>
        <div class="contact">
            <p>Questions? Reach {{.InviterName}} at {{.InviterEmail}}{{if .InviterPhone}} or {{.InviterPhone}}{{end}}.</p>
        </div>
        <div class="footer">
            <p>If you don't know this person, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`

const connectionEmailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>New connection request</h1>
        <p>Hi {{.Name}},</p>
        <p>{{.InviterName}} wants to connect with you on Provely.</p>
        {{if .Comment}}<p>&ldquo;{{.Comment}}&rdquo;</p>{{end}}
        <p><a href="{{.VerifyURL}}" class="button">View request</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.VerifyURL}}</p>
        <div class="footer">
            <p>If you don't know this person, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`
