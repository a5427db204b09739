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

// Package client exposes typed views of the two remote systems the
// orchestrator mutates: the directory service and the mail system. Tenant
// wide collections stream through channels fed by a generic pager so
// callers never see continuation links.
package client

import (
	"context"
	"net/http"

	"github.com/tenantops/offboarder/client/rest"
	"github.com/tenantops/offboarder/client/query"
	"github.com/tenantops/offboarder/models/azure"
	"github.com/tenantops/offboarder/panicrecovery"
)

// AzureResult carries one streamed item or the error that ended the stream.
type AzureResult[T any] struct {
	Error error
	Ok    T
}

func sendResult[T any](done <-chan struct{}, out chan<- AzureResult[T], result AzureResult[T]) bool {
	select {
	case out <- result:
		return true
	case <-done:
		return false
	}
}

// getObjectList streams a paged collection, following @odata.nextLink
// continuations until the collection is exhausted, the context is cancelled
// or a request fails.
func getObjectList[T any](client rest.RestClient, ctx context.Context, path string, params query.Params, out chan AzureResult[T]) {
	defer panicrecovery.PanicRecovery()
	defer close(out)

	var nextLink string

	for {
		var (
			list azure.Page[T]
			res  *http.Response
			err  error
		)

		if nextLink == "" {
			res, err = client.Get(ctx, path, params, nil)
		} else {
			var req *http.Request
			if req, err = http.NewRequestWithContext(ctx, http.MethodGet, nextLink, nil); err == nil {
				res, err = client.Send(req)
			}
		}

		if err != nil {
			sendResult(ctx.Done(), out, AzureResult[T]{Error: err})
			return
		}
		if err := rest.Decode(res.Body, &list); err != nil {
			sendResult(ctx.Done(), out, AzureResult[T]{Error: err})
			return
		}

		for _, item := range list.Value {
			if ok := sendResult(ctx.Done(), out, AzureResult[T]{Ok: item}); !ok {
				return
			}
		}

		if list.NextLink == "" {
			return
		}
		nextLink = list.NextLink
	}
}

// postObjectList is getObjectList for collections behind a command style
// POST endpoint; continuation pages are plain follows of the returned link.
func postObjectList[T any](client rest.RestClient, ctx context.Context, path string, body interface{}, out chan AzureResult[T]) {
	defer panicrecovery.PanicRecovery()
	defer close(out)

	var nextLink string

	for {
		var (
			list azure.Page[T]
			res  *http.Response
			err  error
		)

		if nextLink == "" {
			res, err = client.Post(ctx, path, body, nil, nil)
		} else {
			var req *http.Request
			if req, err = http.NewRequestWithContext(ctx, http.MethodGet, nextLink, nil); err == nil {
				res, err = client.Send(req)
			}
		}

		if err != nil {
			sendResult(ctx.Done(), out, AzureResult[T]{Error: err})
			return
		}
		if err := rest.Decode(res.Body, &list); err != nil {
			sendResult(ctx.Done(), out, AzureResult[T]{Error: err})
			return
		}

		for _, item := range list.Value {
			if ok := sendResult(ctx.Done(), out, AzureResult[T]{Ok: item}); !ok {
				return
			}
		}

		if list.NextLink == "" {
			return
		}
		nextLink = list.NextLink
	}
}
