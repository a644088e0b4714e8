package main

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/tomasen/realip"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, header http.Header, data envelope) error {
	resBody, err := json.Marshal(data)
	if err != nil {
		return err
	}

	resBody = append(resBody, '\n')

	for key, val := range header {
		w.Header()[key] = val
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// The status line is already out; a failed write means the client is gone
	// and there is nothing left to report to it.
	_, _ = w.Write(resBody)
	return nil
}

// clientIP identifies the originating client. realip prefers X-Real-Ip and
// the first public X-Forwarded-For entry; it gives up on chains of private
// addresses, which is what an internal load balancer sends, so those fall
// back to the leftmost forwarded address and then to the peer address.
func clientIP(r *http.Request) string {
	if ip := realip.FromRequest(r); ip != "" {
		return ip
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
