package response

// StatusCode is an HTTP status code.
type StatusCode int

const (
	StatusOK                          StatusCode = 200
	StatusBadRequest                  StatusCode = 400
	StatusRequestTimeout              StatusCode = 408
	StatusPayloadTooLarge             StatusCode = 413
	StatusRequestHeaderFieldsTooLarge StatusCode = 431
	StatusInternalServerError         StatusCode = 500
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:                          "OK",
	StatusBadRequest:                  "Bad Request",
	StatusRequestTimeout:              "Request Timeout",
	StatusPayloadTooLarge:             "Payload Too Large",
	StatusRequestHeaderFieldsTooLarge: "Request Header Fields Too Large",
	StatusInternalServerError:         "Internal Server Error",
}

// GetStatusReason returns the reason phrase for a status code, or an empty
// string for codes this package does not know.
func GetStatusReason(code StatusCode) string {
	return reasonPhrases[code]
}
