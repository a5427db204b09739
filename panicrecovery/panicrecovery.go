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

package panicrecovery

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/go-logr/logr"
)

var panicChan = make(chan error, 1)

// PanicRecovery recovers a panicking goroutine and bubbles the panic to the
// channel drained by HandleBubbledPanic. Deferred at the top of every worker
// goroutine so a panic in one enumeration cannot take down the process
// without being logged.
func PanicRecovery() {
	if recovery := recover(); recovery != nil {
		select {
		case panicChan <- fmt.Errorf("panic: %v\n%s", recovery, debug.Stack()):
		default:
		}
	}
}

// HandleBubbledPanic logs bubbled panics and cancels the current run.
func HandleBubbledPanic(ctx context.Context, stop context.CancelFunc, log logr.Logger) {
	go func() {
		for {
			select {
			case err := <-panicChan:
				log.Error(err, "recovered from panic")
				stop()
			case <-ctx.Done():
				return
			}
		}
	}()
}
