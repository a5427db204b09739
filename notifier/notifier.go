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

// Package notifier posts run summaries to a webhook. Delivery is best
// effort; callers treat a failure here as a warning, not a failed run.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/gofrs/uuid"
	"github.com/tenantops/offboarder/client/rest"
)

type WebhookNotifier struct {
	http *http.Client
	log  logr.Logger
}

func NewWebhookNotifier(proxyUrl string, log logr.Logger) (*WebhookNotifier, error) {
	if client, err := rest.NewHTTPClient(proxyUrl); err != nil {
		return nil, err
	} else {
		return &WebhookNotifier{http: client, log: log}, nil
	}
}

type message struct {
	Text string `json:"text"`
}

func (s *WebhookNotifier) Post(ctx context.Context, destination, body string) error {
	payload := bytes.Buffer{}
	if err := json.NewEncoder(&payload).Encode(message{Text: body}); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, &payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if requestId, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", requestId.String())
	}

	res, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned %s", res.Status)
	}

	s.log.V(1).Info("notification delivered", "status", res.StatusCode)
	return nil
}
