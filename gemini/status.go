package gemini

import "fmt"

// Code is a two-digit Gemini response status code.
type Code int

// Category groups status codes by their leading digit.
type Category int

const (
	CategoryInput Category = iota + 1
	CategorySuccess
	CategoryRedirect
	CategoryTemporaryFailure
	CategoryPermanentFailure
	CategoryClientCertError
)

const (
	CodeInput          Code = 10
	CodeSensitiveInput Code = 11

	CodeSuccess Code = 20

	CodeRedirectTemporary Code = 30
	CodeRedirectPermanent Code = 31

	CodeTemporaryFailure  Code = 40
	CodeServerUnavailable Code = 41
	CodeCGIError          Code = 42
	CodeProxyError        Code = 43
	CodeSlowDown          Code = 44

	CodePermanentFailure    Code = 50
	CodeNotFound            Code = 51
	CodeGone                Code = 52
	CodeProxyRequestRefused Code = 53
	CodeBadRequest          Code = 59

	CodeCertificateRequired      Code = 60
	CodeCertificateNotAuthorized Code = 61
	CodeCertificateNotValid      Code = 62
)

// statusTable is the single source of truth mapping every valid status
// code to its category. Codes absent from this table are protocol errors.
var statusTable = map[Code]Category{
	CodeInput:          CategoryInput,
	CodeSensitiveInput: CategoryInput,

	CodeSuccess: CategorySuccess,

	CodeRedirectTemporary: CategoryRedirect,
	CodeRedirectPermanent: CategoryRedirect,

	CodeTemporaryFailure:  CategoryTemporaryFailure,
	CodeServerUnavailable: CategoryTemporaryFailure,
	CodeCGIError:          CategoryTemporaryFailure,
	CodeProxyError:        CategoryTemporaryFailure,
	CodeSlowDown:          CategoryTemporaryFailure,

	CodePermanentFailure:    CategoryPermanentFailure,
	CodeNotFound:            CategoryPermanentFailure,
	CodeGone:                CategoryPermanentFailure,
	CodeProxyRequestRefused: CategoryPermanentFailure,
	CodeBadRequest:          CategoryPermanentFailure,

	CodeCertificateRequired:      CategoryClientCertError,
	CodeCertificateNotAuthorized: CategoryClientCertError,
	CodeCertificateNotValid:      CategoryClientCertError,
}

var codeNames = map[Code]string{
	CodeInput:                    "input",
	CodeSensitiveInput:           "sensitive input",
	CodeSuccess:                  "success",
	CodeRedirectTemporary:        "redirect",
	CodeRedirectPermanent:        "permanent redirect",
	CodeTemporaryFailure:         "temporary failure",
	CodeServerUnavailable:        "server unavailable",
	CodeCGIError:                 "cgi error",
	CodeProxyError:               "proxy error",
	CodeSlowDown:                 "slow down",
	CodePermanentFailure:         "permanent failure",
	CodeNotFound:                 "not found",
	CodeGone:                     "gone",
	CodeProxyRequestRefused:      "proxy request refused",
	CodeBadRequest:               "bad request",
	CodeCertificateRequired:      "certificate required",
	CodeCertificateNotAuthorized: "certificate not authorized",
	CodeCertificateNotValid:      "certificate not valid",
}

// Category returns the category for a valid code. ok is false for any
// code outside the status table.
func (c Code) Category() (cat Category, ok bool) {
	cat, ok = statusTable[c]
	return cat, ok
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return fmt.Sprintf("%d %s", int(c), name)
	}
	return fmt.Sprintf("%d", int(c))
}

func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "input"
	case CategorySuccess:
		return "success"
	case CategoryRedirect:
		return "redirect"
	case CategoryTemporaryFailure:
		return "temporary failure"
	case CategoryPermanentFailure:
		return "permanent failure"
	case CategoryClientCertError:
		return "client certificate error"
	}
	return "unknown"
}
