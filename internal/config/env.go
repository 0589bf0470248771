// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strconv"
)

const (
	backendSection = "backend"
	moduleClassKey = "module_class"
)

// envVarKind tells the scanner how to convert a variable's raw string value.
type envVarKind int

const (
	// envVarString stores the value verbatim. Also used for module_class,
	// which names a backend type and keeps its exact casing.
	envVarString envVarKind = iota
	// envVarInt converts the value with strconv.Atoi.
	envVarInt
)

// envVarSpec places one recognized environment variable into the staged
// config mapping.
type envVarSpec struct {
	name string
	path []string
	kind envVarKind
}

// envSchema enumerates every environment variable this package recognizes.
// Backend-specific variables stage their values under the backend *type name*
// (e.g. "MemoryBackend"); [flattenBackend] later hoists the active type's
// entries into the backend section proper.
//
// Variables not listed here are not configuration and are ignored, whether or
// not they carry the MEDALLION_ prefix.
var envSchema = []envVarSpec{
	{
		name: "MEDALLION_TAXII_MAX_PAGE_SIZE",
		path: []string{"taxii", "max_page_size"},
		kind: envVarInt,
	},
	{
		name: "MEDALLION_BACKEND_MODULE_CLASS",
		path: []string{backendSection, moduleClassKey},
		kind: envVarString,
	},
	{
		name: "MEDALLION_BACKEND_MEMORY_FILENAME",
		path: []string{backendSection, "MemoryBackend", "filename"},
		kind: envVarString,
	},
	{
		name: "MEDALLION_BACKEND_MONGO_URI",
		path: []string{backendSection, "MongoBackend", "uri"},
		kind: envVarString,
	},
}

// EnvConfig holds configuration collected from environment variables in its
// staged form: backend-specific keys remain nested under their backend type
// name until the loader flattens the final merged mapping.
type EnvConfig struct {
	data Mapping
}

// FromEnviron builds an [EnvConfig] from an environment snapshot. Only the
// variables listed in the schema contribute; an environment with none of them
// yields an empty config. The snapshot is never mutated.
//
// Returns an error when a value cannot be converted to its declared type
// (e.g. a non-integer MEDALLION_TAXII_MAX_PAGE_SIZE).
func FromEnviron(environ map[string]string) (*EnvConfig, error) {
	data := Mapping{}
	for _, spec := range envSchema {
		raw, ok := environ[spec.name]
		if !ok {
			continue
		}

		value, err := spec.convert(raw)
		if err != nil {
			return nil, err
		}
		setPath(data, spec.path, value)
	}

	return &EnvConfig{data: data}, nil
}

func (s envVarSpec) convert(raw string) (any, error) {
	switch s.kind {
	case envVarInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("environment variable %s: %w", s.name, err)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// AsMap returns the staged configuration mapping. Each call returns a fresh
// deep copy, so callers may modify the result freely.
func (c *EnvConfig) AsMap() Mapping {
	return cloneMapping(c.data)
}

// setPath stores value at the nested location named by path, creating
// intermediate mappings as needed.
func setPath(m Mapping, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		nested, ok := m[key].(map[string]any)
		if !ok {
			nested = Mapping{}
			m[key] = nested
		}
		m = nested
	}
	m[path[len(path)-1]] = value
}

// flattenBackend reconciles the staged backend representation with the flat
// contract consumers expect: when backend.module_class names a type that has
// a staged sub-mapping, that sub-mapping's entries are hoisted into the
// backend section (overwriting same-named siblings) and the type key is
// removed. Returns a new mapping; m is not mutated.
func flattenBackend(m Mapping) Mapping {
	backend, ok := m[backendSection].(map[string]any)
	if !ok {
		return m
	}

	moduleClass, ok := backend[moduleClassKey].(string)
	if !ok {
		return m
	}

	if _, ok := backend[moduleClass].(map[string]any); !ok {
		return m
	}

	flattened := cloneMapping(m)
	backend = flattened[backendSection].(map[string]any)
	staged := backend[moduleClass].(map[string]any)
	delete(backend, moduleClass)
	for k, v := range staged {
		backend[k] = v
	}

	return flattened
}
