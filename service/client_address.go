package service

import (
	"net"
	"net/http"
	"strings"

	"chat-gate-service/conf"
)

const (
	UnknownClient = "unknown"

	forwardedForHeader = "X-Forwarded-For"
	clientIpHeader     = "Client-Ip"
)

// ClientAddress derives the rate limit key of a request.
// Forwarded headers are caller controlled, they are trusted only when
// the service sits behind a reverse proxy that overwrites them.
type ClientAddress struct {
	ignoreForwardedHeaders bool
	rejectUnidentified     bool
}

func NewClientAddress(config conf.ClientAddress) ClientAddress {
	return ClientAddress{
		ignoreForwardedHeaders: config.IgnoreForwardedHeaders,
		rejectUnidentified:     config.RejectUnidentified,
	}
}

// Resolve returns the client identifier and false when the request
// must be rejected as unidentified.
func (s ClientAddress) Resolve(req *http.Request) (string, bool) {
	clientId := s.resolve(req)
	if clientId == "" {
		return UnknownClient, !s.rejectUnidentified
	}
	return clientId, true
}

func (s ClientAddress) resolve(req *http.Request) string {
	if s.ignoreForwardedHeaders {
		host, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			return strings.TrimSpace(req.RemoteAddr)
		}
		return host
	}

	for _, value := range strings.Split(req.Header.Get(forwardedForHeader), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return strings.TrimSpace(req.Header.Get(clientIpHeader))
}
