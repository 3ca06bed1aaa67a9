// Package flagx lets several flag sets share one command line. Each
// component filters os.Args down to the flags it owns before parsing, so
// unknown flags from other components never make a FlagSet fail.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the flags named in owned together with their values.
// Both "-f value" and "-f=value" forms are recognised; a following token
// that starts with "-" is never taken as a value. Scanning stops at a bare
// "--". The result is never nil.
func FilterArgs(args []string, owned []string) []string {
	own := make(map[string]struct{}, len(owned))
	for _, f := range owned {
		own[f] = struct{}{}
	}

	kept := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, mine := own[name]; mine {
				kept = append(kept, arg)
			}
			continue
		}

		if _, mine := own[arg]; !mine {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			kept = append(kept, args[i])
		}
	}

	return kept
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
