package respond

import (
	"regexp"
)

var (
	// NewsAPI keys are 32 hex characters passed as the apiKey query param.
	newsAPIKeyPattern = regexp.MustCompile(`(?i)apikey=[a-z0-9]+`)

	// database passwords inside DSNs
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)

	// bearer tokens in logged headers or wrapped errors
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-z0-9-_.]+`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = newsAPIKeyPattern.ReplaceAllString(msg, "apiKey=****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")
	return msg
}
