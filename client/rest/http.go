// Copyright (C) 2025 Tenant Ops, Inc.
//
// This file is part of Offboarder.
//
// Offboarder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Offboarder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

func NewHTTPClient(proxyUrl string) (*http.Client, error) {
	if dialer, err := GetDialer(proxyUrl); err != nil {
		return nil, err
	} else {
		transport := &http.Transport{
			DialContext: func(ctx context.Context, network string, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
			MaxIdleConnsPerHost:   20,
			MaxConnsPerHost:       20,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 5 * time.Minute,
			TLSClientConfig:       &tls.Config{},
		}
		return &http.Client{Transport: transport}, nil
	}
}

// NewRequest builds a request with optional json body, query parameters and
// headers.
func NewRequest(ctx context.Context, verb string, endpoint *url.URL, body interface{}, params map[string]string, headers map[string]string) (*http.Request, error) {
	var reader io.Reader = nil

	if body != nil {
		if jsonBody, err := json.Marshal(body); err != nil {
			return nil, err
		} else {
			reader = strings.NewReader(string(jsonBody))
		}
	}

	if len(params) > 0 {
		query := endpoint.Query()
		for key, value := range params {
			query.Set(key, value)
		}
		endpoint.RawQuery = query.Encode()
	}

	if req, err := http.NewRequestWithContext(ctx, verb, endpoint.String(), reader); err != nil {
		return nil, err
	} else {
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}
		return req, nil
	}
}
