package accounts

import (
	stderrors "errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = stderrors.New("identity not found")

// ErrUnableToFindSession is the error when our request has no cookie
var ErrUnableToFindSession = stderrors.New("unable to find session")

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = stderrors.New("unable to decode session")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = stderrors.New("unable to map claims")

// ErrUnableToParseData parse error
var ErrUnableToParseData = stderrors.New("unable to parse data")

var (
	// ErrNoEmptyString guards password hashing against empty input
	ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryValidation).
				WithTextCode("EMPTY_STRING")

	// ErrMismatchedHashAndPassword is the generic credential failure.
	// Unknown identifier and wrong password both surface this error so
	// responses never reveal which field was wrong.
	ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
					WithTextCode("INVALID_CREDENTIALS")

	// ErrTooManyLoginAttempts is returned during the cool down window
	ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryAuth).
				WithTextCode("TOO_MANY_ATTEMPTS")

	// ErrAccountNotActive is returned for accounts pending activation
	ErrAccountNotActive = errors.New("account is not active", errors.CategoryAuth).
				WithTextCode("ACCOUNT_INACTIVE")

	// ErrTokenExpired session token no longer valid
	ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(errors.CodeUnauthorized)

	// ErrTokenMalformed session token could not be parsed
	ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED").
				WithCode(errors.CodeUnauthorized)

	// ErrLinkInvalid covers every activation or reset link failure,
	// bad signature, unknown user, or undecodable uid alike
	ErrLinkInvalid = errors.New("link is invalid or expired", errors.CategoryAuth).
			WithTextCode("LINK_INVALID")

	// ErrEmailSendFailed notification delivery failed. The account
	// changes the notification referred to are already committed.
	ErrEmailSendFailed = errors.New("could not send email notification", errors.CategoryOperation).
				WithTextCode("EMAIL_SEND_FAILED")
)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsLinkInvalidError checks for the invalid link text code
func IsLinkInvalidError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == ErrLinkInvalid.TextCode
	}

	return false
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field to message map we can hand to templates
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var verrs validation.Errors
	if stderrors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for field := range verrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			if ferr := verrs[field]; ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}
