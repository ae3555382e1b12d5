package main

import (
	"fmt"
	"strings"
)

type cliOptions struct {
	help        bool
	list        bool
	descending  bool
	sortBy      string
	filter      string
	search      string
	perspective string
	path        string
}

// parseArgs accepts "--opt value" and "--opt=value" forms plus one
// positional path.
func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions
	valueFlags := map[string]*string{
		"--sort":        &opts.sortBy,
		"--filter":      &opts.filter,
		"--search":      &opts.search,
		"--perspective": &opts.perspective,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			opts.help = true
			continue
		case "-l", "--list":
			opts.list = true
			continue
		case "--desc":
			opts.descending = true
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if target, ok := valueFlags[name]; ok {
			if !hasValue {
				if i+1 >= len(args) {
					return opts, fmt.Errorf("%s needs a value", name)
				}
				i++
				value = args[i]
			}
			*target = value
			continue
		}

		if strings.HasPrefix(arg, "-") && arg != "-" {
			return opts, fmt.Errorf("unknown option %s", arg)
		}
		if opts.path != "" {
			return opts, fmt.Errorf("unexpected argument %s", arg)
		}
		opts.path = arg
	}
	return opts, nil
}
