package jobs

import "fmt"

// containerKeys lists the object keys probed, in order, for the list of jobs.
var containerKeys = []string{"data", "jobs", "results", "job_results"}

// findItems returns the job items of a decoded response. A bare array wins,
// otherwise the first container key holding an array is used, even when empty.
func findItems(body any) ([]any, error) {
	switch v := body.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range containerKeys {
			if items, ok := v[key].([]any); ok {
				return items, nil
			}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		return nil, fmt.Errorf("%w: no job list under any of %v (keys: %v)", ErrUnsupportedShape, containerKeys, keys)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, body)
	}
}
