package cli

import "strings"

// configFlags are the flags consumed by the config package; Positional
// strips them (and their values) so only the subcommand and its arguments
// remain.
var configFlags = map[string]struct{}{
	"-e": {}, "-r": {}, "-b": {}, "-u": {}, "-p": {}, "-t": {},
	"-c": {}, "-config": {},
}

// Positional returns args with config flags removed. Both "-b bucket" and
// "-b=bucket" forms are recognized.
func Positional(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			name := arg
			hasValue := false
			if idx := strings.Index(arg, "="); idx >= 0 {
				name = arg[:idx]
				hasValue = true
			}
			if _, ok := configFlags[name]; ok {
				if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
					i++ // skip the flag's value
				}
				continue
			}
			continue // unknown flag, drop it rather than treat as a command
		}
		out = append(out, arg)
	}
	return out
}
