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
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-retryable error response from the remote API.
type StatusError struct {
	StatusCode int
	Response   map[string]interface{}
}

func (s StatusError) Error() string {
	if len(s.Response) == 0 {
		return fmt.Sprintf("unexpected response, status code: %d", s.StatusCode)
	}
	return fmt.Sprintf("status code %d: %v", s.StatusCode, s.Response)
}

// IsNotFoundErr reports whether the error is a remote 404.
func IsNotFoundErr(err error) bool {
	var statusErr StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
