package quickprop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leanovate/gopter"
)

// parseOptions turns the directive's passthrough tokens into engine
// parameters. The generator forwards the tokens verbatim without looking at
// them; this is where unknown keys, malformed values and duplicates are
// rejected, at the test's own call site.
//
// Supported options:
//
//	workers     = N   concurrent exploration goroutines (N > 0)
//	seed        = N   deterministic generation seed
//	min_tests   = N   passes required before the property holds (N > 0)
//	max_shrinks = N   shrinking steps bound (N >= 0)
//	min_size    = N   lower sizing bound for generated values (N >= 0)
//	max_size    = N   upper sizing bound for generated values (N >= 0)
func parseOptions(opts []string) (*gopter.TestParameters, error) {
	params := gopter.DefaultTestParameters()

	seen := make(map[string]bool, len(opts))
	for _, opt := range opts {
		key, value, ok := strings.Cut(opt, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("option %q is not of the form key = value", opt)
		}

		if seen[key] {
			return nil, fmt.Errorf("duplicate option %q", key)
		}
		seen[key] = true

		switch key {
		case "workers":
			n, err := parseBoundedInt(key, value, 1)
			if err != nil {
				return nil, err
			}
			params.Workers = n
		case "seed":
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("option %q: invalid value %q", key, value)
			}
			// SetSeed also reseeds the parameters' locked RNG source, which
			// stays safe to share across exploration workers.
			params.SetSeed(v)
		case "min_tests":
			n, err := parseBoundedInt(key, value, 1)
			if err != nil {
				return nil, err
			}
			params.MinSuccessfulTests = n
		case "max_shrinks":
			n, err := parseBoundedInt(key, value, 0)
			if err != nil {
				return nil, err
			}
			params.MaxShrinkCount = n
		case "min_size":
			n, err := parseBoundedInt(key, value, 0)
			if err != nil {
				return nil, err
			}
			params.MinSize = n
		case "max_size":
			n, err := parseBoundedInt(key, value, 0)
			if err != nil {
				return nil, err
			}
			params.MaxSize = n
		default:
			return nil, fmt.Errorf("unknown option %q", key)
		}
	}

	return params, nil
}

func parseBoundedInt(key, value string, min int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("option %q: invalid value %q", key, value)
	}
	if n < min {
		return 0, fmt.Errorf("option %q: value must be at least %d, got %d", key, min, n)
	}
	return n, nil
}
