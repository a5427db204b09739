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

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/tenantops/offboarder/config"
	"github.com/tenantops/offboarder/offboard"
	"github.com/tenantops/offboarder/panicrecovery"
)

func init() {
	configs := append(config.OnboardConfig, config.DryRun)
	config.Init(onboardCmd, configs)
	rootCmd.AddCommand(onboardCmd)
}

var onboardCmd = &cobra.Command{
	Use:               "onboard <userPrincipalName>",
	Short:             "Provision a new account with a one-time password and licenses",
	Args:              cobra.ExactArgs(1),
	Run:               onboardCmdImpl,
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
}

func onboardCmdImpl(cmd *cobra.Command, args []string) {
	runOnboard(cmd.Context(), args[0])
}

func runOnboard(ctx context.Context, userPrincipalName string) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, os.Kill)
	defer gracefulShutdown(stop)
	panicrecovery.HandleBubbledPanic(ctx, stop, log)

	directory, exchange := connectClients()
	defer directory.CloseIdleConnections()
	defer exchange.CloseIdleConnections()

	onboarder := offboard.NewOnboarder(directory, log)
	onboarder.DryRun = config.DryRun.Value().(bool)

	result, err := onboarder.Onboard(
		ctx,
		userPrincipalName,
		config.DisplayName.Value().(string),
		config.UsageLocation.Value().(string),
		// Viper hands back a string or []interface{} when the value comes
		// from the environment or a config file rather than the flag.
		cast.ToStringSlice(config.LicenseSkus.Value()),
	)
	if err != nil {
		exit(fmt.Errorf("onboarding %s: %w", userPrincipalName, err))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		exit(fmt.Errorf("failed to write result: %w", err))
	}
}
