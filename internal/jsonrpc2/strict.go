// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// StrictUnmarshal unmarshals JSON data into v with strict validation rules:
//   - rejects duplicate keys with different cases (e.g. "sessionId" and "SessionId")
//   - validates that JSON field names exactly match struct tags (case-sensitive)
//   - rejects unknown fields not defined in the struct
//
// Go's encoding/json matches field names case-insensitively when no exact
// tag match exists, which would let a peer smuggle a field past a naive
// case-sensitive check by varying its case. StrictUnmarshal closes that gap
// for the envelope fields that drive routing (sessionId, id, method).
func StrictUnmarshal(data []byte, v any) error {
	if err := validateNoDuplicateKeys(data); err != nil {
		return fmt.Errorf("strict unmarshal: %w", err)
	}
	if err := validateFieldCase(data, v); err != nil {
		return fmt.Errorf("strict unmarshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("strict unmarshal: %w", err)
	}
	return nil
}

// validateNoDuplicateKeys checks if the JSON data contains duplicate keys
// with different cases (e.g. both "sessionId" and "SessionId").
func validateNoDuplicateKeys(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object: no duplicate keys are possible.
		return nil
	}

	seen := make(map[string]string) // lowercase -> original
	for key := range raw {
		lowerKey := strings.ToLower(key)
		if original, exists := seen[lowerKey]; exists && original != key {
			return fmt.Errorf("duplicate key with different case: %q and %q", original, key)
		}
		seen[lowerKey] = key
	}

	for key, val := range raw {
		if err := validateNoDuplicateKeysRecursive(val); err != nil {
			return fmt.Errorf("in field %q: %w", key, err)
		}
	}
	return nil
}

func validateNoDuplicateKeysRecursive(data json.RawMessage) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		seen := make(map[string]string)
		for key := range obj {
			lowerKey := strings.ToLower(key)
			if original, exists := seen[lowerKey]; exists && original != key {
				return fmt.Errorf("duplicate key with different case: %q and %q", original, key)
			}
			seen[lowerKey] = key
		}
		for key, val := range obj {
			if err := validateNoDuplicateKeysRecursive(val); err != nil {
				return fmt.Errorf("in field %q: %w", key, err)
			}
		}
		return nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err == nil {
		for i, elem := range arr {
			if err := validateNoDuplicateKeysRecursive(elem); err != nil {
				return fmt.Errorf("in array index %d: %w", i, err)
			}
		}
		return nil
	}

	return nil
}

// validateFieldCase ensures that JSON field names exactly match the struct
// tags (case-sensitive), so e.g. "SessionId" cannot stand in for "sessionId".
func validateFieldCase(data []byte, v any) error {
	expectedFields := extractExpectedFields(v)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	for key := range raw {
		if expectedFields[key] {
			continue
		}
		lowerKey := strings.ToLower(key)
		for expected := range expectedFields {
			if strings.ToLower(expected) == lowerKey {
				return fmt.Errorf("field name case mismatch: got %q, expected %q", key, expected)
			}
		}
		// No case-insensitive match either: an unknown field, which
		// DisallowUnknownFields will reject on its own.
	}
	return nil
}

// extractExpectedFields uses reflection to extract valid field names from
// struct tags.
func extractExpectedFields(v any) map[string]bool {
	fields := make(map[string]bool)

	t := reflect.TypeOf(v)
	if t == nil {
		return fields
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fields
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := tag
		if idx := strings.Index(tag, ","); idx != -1 {
			name = tag[:idx]
		}
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
