package mail

import "fmt"

// VerificationEmail builds the email-address confirmation message. The link
// target lives on the frontend, which calls back into the API with the code.
func VerificationEmail(frontendURL, to, code string) Email {
	link := fmt.Sprintf("%s/verify-email?code=%s", frontendURL, code)
	return Email{
		To:      to,
		Subject: "Verify your email address",
		HTML: fmt.Sprintf(`<h1>TNKR Email Verification</h1>
<p>Please click the link below to verify your email address:</p>
<a href=%q>Verify Email</a>
<p>This link will expire in 24 hours.</p>`, link),
	}
}

// PasswordResetEmail builds the reset message. The code expires after one hour.
func PasswordResetEmail(frontendURL, to, code string) Email {
	link := fmt.Sprintf("%s/reset-password?code=%s", frontendURL, code)
	return Email{
		To:      to,
		Subject: "Reset your password",
		HTML: fmt.Sprintf(`<h1>TNKR Password Reset</h1>
<p>Please click the link below to reset your password:</p>
<a href=%q>Reset Password</a>
<p>This link will expire in 1 hour.</p>`, link),
	}
}

// TechnicianDecisionEmail notifies a technician of the admin's review outcome.
func TechnicianDecisionEmail(to string, approved bool) Email {
	if approved {
		return Email{
			To:      to,
			Subject: "Your technician profile has been approved",
			HTML: `<h1>Welcome aboard!</h1>
<p>Your technician profile has been reviewed and approved. You now have full access to the technician dashboard.</p>`,
		}
	}
	return Email{
		To:      to,
		Subject: "Update on your technician profile",
		HTML: `<h1>Profile review update</h1>
<p>Unfortunately your technician profile could not be approved at this time. Please review your details and submit again.</p>`,
	}
}
