package http

import (
	"net/http"
	"net/http/httputil"

	log "github.com/sirupsen/logrus"
)

func NewLoggingRoundTripper(roundTripper http.RoundTripper, entry *log.Entry) http.RoundTripper {
	return &logRoundTripper{roundTripper: roundTripper, entry: entry}
}

type logRoundTripper struct {
	roundTripper http.RoundTripper
	entry        *log.Entry
}

func (rt *logRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.entry.Logger.IsLevelEnabled(log.DebugLevel) {
		if info, err := httputil.DumpRequestOut(req, true); err == nil {
			rt.entry.Debugf("Sending request: %s", string(info))
		}
	}
	resp, err := rt.roundTripper.RoundTrip(req)
	if resp != nil && rt.entry.Logger.IsLevelEnabled(log.DebugLevel) {
		if info, err := httputil.DumpResponse(resp, true); err == nil {
			rt.entry.Debugf("Received response: %s", string(info))
		}
	}
	return resp, err
}

// NewClient returns a client that logs requests and responses at debug level.
func NewClient(rawURL string, insecureSkipVerify bool, entry *log.Entry) *http.Client {
	return &http.Client{
		Transport: NewLoggingRoundTripper(NewTransport(rawURL, insecureSkipVerify), entry),
	}
}
