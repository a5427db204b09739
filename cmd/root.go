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
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/tenantops/offboarder/config"
)

var log logr.Logger

func init() {
	configs := append(config.GlobalConfig, config.AzureConfig...)
	config.Init(rootCmd, configs)
}

var rootCmd = &cobra.Command{
	Use:               "offboarder",
	Short:             "Identity offboarding for Microsoft 365 tenants",
	Long:              "Resolves a departing account across the directory and mail system, then runs the ordered deprovisioning stages against it.",
	PersistentPreRunE: persistentPreRunE,
	SilenceUsage:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
