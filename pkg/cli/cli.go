// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"github.com/jessevdk/go-flags"

	"github.com/netdata/netdata/go/ts3exporter/pkg/buildinfo"
)

// Option defines command line options.
type Option struct {
	ConfigFile string `short:"c" long:"config" description:"configuration file to read, environment variables are used when it does not exist" default:"config.yaml"`
	Debug      bool   `short:"d" long:"debug" description:"debug mode"`
	Version    bool   `short:"v" long:"version" description:"display the version and exit"`
}

// Parse returns parsed command-line flags in Option struct
func Parse(args []string) (*Option, error) {
	opt := &Option{}
	parser := flags.NewParser(opt, flags.Default)
	parser.Name = buildinfo.Name
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return opt, nil
}

func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
