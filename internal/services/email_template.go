package services

import (
	"fmt"
	"time"
)

// OnboardingEmail renders the HTML body sent to users provisioned through
// add-to-company, carrying their temporary password.
func OnboardingEmail(companyName, tempPassword string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome to Obra Fácil</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header { text-align: center; margin-bottom: 30px; }
        .content {
            background-color: #f9f9f9;
            padding: 20px;
            border-radius: 5px;
            margin-bottom: 20px;
        }
        .password-box {
            background-color: #e9f7fe;
            padding: 10px;
            border-radius: 5px;
            margin: 15px 0;
            text-align: center;
            font-size: 18px;
            font-weight: bold;
            user-select: all;
        }
        .footer {
            text-align: center;
            font-size: 12px;
            color: #777;
            margin-top: 30px;
        }
        .text { color: #fbb22f; }
        .bodyText { color: #023d79; }
    </style>
</head>
<body>
    <div class="header">
        <h1 class="bodyText"><span class="text">Obra</span> Fácil</h1>
    </div>

    <div class="content">
        <p>You were added to the company <strong>%s</strong>.</p>
        <p>To access the platform, download our app and sign in with your email and the temporary password below:</p>

        <div class="password-box">%s</div>

        <p>We recommend changing this password after your first login.</p>
    </div>

    <div class="footer">
        <p>This message was sent automatically, please do not reply.</p>
        <p>© %d Obra Fácil. All rights reserved.</p>
    </div>
</body>
</html>
`, companyName, tempPassword, time.Now().Year())
}
