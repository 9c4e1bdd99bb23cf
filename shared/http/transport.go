package http

import (
	"crypto/tls"
	"crypto/x509"
	"io/ioutil"
	"net/http"
	"net/url"
	"path/filepath"
)

var certsDir string

// SetCertsDir configures a directory holding PEM encoded certificates named after the server host.
func SetCertsDir(dir string) {
	certsDir = dir
}

func NewTransport(rawURL string, insecureSkipVerify bool) *http.Transport {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	} else if certsDir != "" {
		parsedURL, err := url.Parse(rawURL)
		if err != nil {
			return transport
		}
		serverCertificatePem, err := ioutil.ReadFile(filepath.Join(certsDir, parsedURL.Hostname()))
		if err != nil {
			return transport
		} else if len(serverCertificatePem) > 0 {
			certPool := x509.NewCertPool()
			certPool.AppendCertsFromPEM(serverCertificatePem)
			transport.TLSClientConfig = &tls.Config{
				RootCAs: certPool,
			}
		}
	}
	return transport
}
