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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/proxy"

	"github.com/tenantops/offboarder/client"
	client_config "github.com/tenantops/offboarder/client/config"
	"github.com/tenantops/offboarder/client/rest"
	"github.com/tenantops/offboarder/config"
	"github.com/tenantops/offboarder/logger"
)

func init() {
	proxy.RegisterDialerType("http", rest.NewProxyDialer)
	proxy.RegisterDialerType("https", rest.NewProxyDialer)
}

func exit(err error) {
	log.Error(err, "encountered unrecoverable error")
	os.Exit(1)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	// need to set config flag value explicitly
	if cmd != nil {
		if configFlag := cmd.Flag(config.ConfigFile.Name).Value.String(); configFlag != "" {
			config.ConfigFile.Set(configFlag)
		}
	}

	config.LoadValues(cmd, config.Options())

	if logr, err := logger.GetLogger(); err != nil {
		return err
	} else {
		log = *logr

		if config.ConfigFileUsed() != "" {
			log.V(1).Info(fmt.Sprintf("Config File: %v", config.ConfigFileUsed()))
		}

		if config.LogFile.Value() != "" {
			log.V(1).Info(fmt.Sprintf("Log File: %v", config.LogFile.Value()))
		}

		return nil
	}
}

func gracefulShutdown(stop context.CancelFunc) {
	stop()
	fmt.Fprintln(os.Stderr, "\nshutting down gracefully, press ctrl+c again to force")
}

func testConnections() error {
	if _, err := rest.Dial(log, config.AuthorityUrl.Value().(string)); err != nil {
		return fmt.Errorf("unable to connect to %s: %w", config.AuthorityUrl.Value(), err)
	} else if _, err := rest.Dial(log, config.GraphUrl.Value().(string)); err != nil {
		return fmt.Errorf("unable to connect to %s: %w", config.GraphUrl.Value(), err)
	} else if _, err := rest.Dial(log, config.ExchangeUrl.Value().(string)); err != nil {
		return fmt.Errorf("unable to connect to %s: %w", config.ExchangeUrl.Value(), err)
	} else {
		return nil
	}
}

func clientConfig() (client_config.Config, error) {
	var (
		certFile   = config.ClientCert.Value()
		keyFile    = config.ClientKey.Value()
		clientCert string
		clientKey  string
	)

	if file, ok := certFile.(string); ok && file != "" {
		if content, err := os.ReadFile(file); err != nil {
			return client_config.Config{}, fmt.Errorf("unable to read provided certificate: %w", err)
		} else {
			clientCert = string(content)
		}
	}

	if file, ok := keyFile.(string); ok && file != "" {
		if content, err := os.ReadFile(file); err != nil {
			return client_config.Config{}, fmt.Errorf("unable to read provided key file: %w", err)
		} else {
			clientKey = string(content)
		}
	}

	return client_config.Config{
		ApplicationId: config.AppId.Value().(string),
		Authority:     config.AuthorityUrl.Value().(string),
		ClientSecret:  config.ClientSecret.Value().(string),
		ClientCert:    clientCert,
		ClientKey:     clientKey,
		KeyPassphrase: config.KeyPassphrase.Value().(string),
		ProxyUrl:      config.Proxy.Value().(string),
		Tenant:        config.Tenant.Value().(string),
	}, nil
}

func connectClients() (client.DirectoryClient, client.ExchangeClient) {
	log.V(1).Info("testing connections")
	if err := testConnections(); err != nil {
		exit(fmt.Errorf("failed to test connections: %w", err))
	} else if cfg, err := clientConfig(); err != nil {
		exit(err)
	} else if directory, err := client.NewDirectoryClient(config.GraphUrl.Value().(string), cfg); err != nil {
		exit(fmt.Errorf("failed to create directory client: %w", err))
	} else if exchange, err := client.NewExchangeClient(config.ExchangeUrl.Value().(string), cfg); err != nil {
		exit(fmt.Errorf("failed to create mail system client: %w", err))
	} else {
		return directory, exchange
	}

	panic("unexpectedly failed to create clients without error")
}
