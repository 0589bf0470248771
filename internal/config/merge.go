package config

import (
	"fmt"

	"dario.cat/mergo"
)

// deepMerge merges override onto base and returns the result as a new
// mapping. Nested mappings are merged recursively; on key collision the
// override side wins, including empty values. Neither argument is mutated.
func deepMerge(base, override Mapping) (Mapping, error) {
	merged := cloneMapping(base)
	if err := mergo.Merge(&merged, cloneMapping(override),
		mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	return merged, nil
}

// cloneMapping returns a deep copy of m. Nested mappings are copied
// recursively; scalar and slice values are shared, which is safe because the
// resolver never mutates values in place.
func cloneMapping(m Mapping) Mapping {
	cloned := make(Mapping, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			cloned[k] = cloneMapping(nested)
			continue
		}
		cloned[k] = v
	}

	return cloned
}
