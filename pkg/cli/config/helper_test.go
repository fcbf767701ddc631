package config_test

import "github.com/urfave/cli/v3"

func flagNames(flags []cli.Flag) []string {
	var names []string
	for _, flag := range flags {
		if f, ok := flag.(interface{ Names() []string }); ok {
			if n := f.Names(); len(n) > 0 {
				names = append(names, n[0])
			}
		}
	}
	return names
}
