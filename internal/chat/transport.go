package chat

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// newHTTPTransport returns a tuned Transport with optional TLS skipping.
func newHTTPTransport(skipInsecure bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipInsecure, // NOTE: intended for dev only
		},

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// newHTTPClient builds an http.Client with transport + request timeout.
func newHTTPClient(timeout time.Duration, skipTLSVerify bool) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout, // hard per-request cap
		Transport: newHTTPTransport(skipTLSVerify),
	}
}
