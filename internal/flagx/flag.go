// Package flagx holds small helpers for sharing os.Args between independent
// flag sets: the config file and .env loaders run before the main flag set
// and must not choke on flags they do not own.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Supported forms:
//
//	-c conf.json
//	--config=conf.json
//
// A following token is taken as the value unless it starts with '-'.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// lookupString parses only the given short/long pair out of args and returns
// its last value, or "" when absent.
func lookupString(args []string, short, long, usage string) string {
	var v string

	filtered := FilterArgs(args, []string{"-" + short, "-" + long, "--" + long})

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&v, long, "", usage)
	fs.StringVar(&v, short, "", usage+" (short)")
	_ = fs.Parse(filtered)

	return v
}

// ConfigFileFlag returns the JSON config path given with -c or -config.
func ConfigFileFlag(args []string) string {
	return lookupString(args, "c", "config", "path to JSON config file")
}

// EnvFileFlag returns the .env path given with -e or -env.
func EnvFileFlag(args []string) string {
	return lookupString(args, "e", "env", "path to .env file")
}
