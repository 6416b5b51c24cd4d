package auth

// Result is the uniform outcome of every auth flow. Exactly one of Success
// or Error is set, except the login intermediate where TwoFactor is true.
type Result struct {
	Success   string `json:"success,omitempty"`
	Error     string `json:"error,omitempty"`
	TwoFactor bool   `json:"twoFactor,omitempty"`
}

const (
	MsgInvalidFields      = "Invalid fields!"
	MsgEmailNotFound      = "Email does not exist!"
	MsgEmailNotRegistered = "Email not found!"
	MsgConfirmationSent   = "Confirmation email sent!"
	MsgInvalidCode        = "Invalid code!"
	MsgCodeExpired        = "Code has expired!"
	MsgInvalidCredentials = "Invalid credentials!"
	MsgSomethingWentWrong = "Something went wrong!"
	MsgEmailAlreadyInUse  = "Email already in use!"
	MsgTokenNotFound      = "Token does not exist!"
	MsgTokenExpired       = "Token has expired!"
	MsgEmailVerified      = "Email verified!"
	MsgResetEmailSent     = "Password reset email sent!"
	MsgMissingToken       = "Missing token!"
	MsgInvalidToken       = "Invalid token!"
	MsgPasswordUpdated    = "Password updated!"
	MsgVerificationSent   = "Verification email sent!"
	MsgIncorrectPassword  = "Incorrect password!"
	MsgUnauthorized       = "Unauthorized!"
	MsgSettingsUpdated    = "Settings updated!"
	MsgLoggedIn           = "Logged in!"
	MsgLoggedOut          = "Logged out!"
)

func succeed(msg string) Result {
	return Result{Success: msg}
}

func fail(msg string) Result {
	return Result{Error: msg}
}
