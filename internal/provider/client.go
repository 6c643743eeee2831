package provider

import (
	"net/http"
	"time"
)

// Version is reported in the client label and the X-Therm-Hub-Version response header.
const Version = "20200822"

// DefaultUserAgent identifies every outbound request.
const DefaultUserAgent = "therm_hub/" + Version

const defaultTimeout = 15 * time.Second

// NewHTTPClient returns the shared client used by the provider packages.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Label sets the fixed identifying client label on an outbound request.
func Label(req *http.Request, userAgent string) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
}
