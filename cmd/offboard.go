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

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tenantops/offboarder/config"
	"github.com/tenantops/offboarder/notifier"
	"github.com/tenantops/offboarder/offboard"
	"github.com/tenantops/offboarder/panicrecovery"
)

func init() {
	config.Init(offboardCmd, config.OffboardConfig)
	rootCmd.AddCommand(offboardCmd)
}

var offboardCmd = &cobra.Command{
	Use:               "offboard <identifier> [identifier...]",
	Short:             "Run the deprovisioning stages against one or more accounts",
	Long:              "Each identifier may be an object id, user principal name or primary mail address. Stages run in a fixed order and a failed stage never blocks the rest of the run.",
	Args:              cobra.MinimumNArgs(1),
	Run:               offboardCmdImpl,
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
}

func offboardCmdImpl(cmd *cobra.Command, args []string) {
	runOffboard(cmd.Context(), args)
}

func runOffboard(ctx context.Context, identifiers []string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	directory, exchange := connectClients()
	defer directory.CloseIdleConnections()
	defer exchange.CloseIdleConnections()

	webhook, err := notifier.NewWebhookNotifier(config.Proxy.Value().(string), log)
	if err != nil {
		exit(fmt.Errorf("failed to create webhook notifier: %w", err))
	}

	runner := offboard.NewRunner(directory, exchange, webhook, log)
	runner.DryRun = config.DryRun.Value().(bool)
	runner.RevokeSessions = config.RevokeSessions.Value().(bool)
	runner.NotifyDestination = config.NotifyWebhook.Value().(string)

	var (
		results  []*offboard.RunResult
		notFound bool
		failed   bool
	)

	for _, identifier := range identifiers {
		result := runner.Offboard(ctx, identifier)
		results = append(results, result)

		if result.NotFound {
			notFound = true
		}
		if result.Failed() {
			failed = true
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		exit(fmt.Errorf("failed to write results: %w", err))
	}

	// Not-found outranks stage failure so automation can tell a bad
	// identifier apart from a partial run.
	if notFound {
		os.Exit(2)
	} else if failed {
		os.Exit(1)
	}
}
