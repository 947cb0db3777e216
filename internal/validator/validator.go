// Package validator checks the structure of persisted API model documents.
package validator

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Summary counts what a valid document contains.
type Summary struct {
	Namespaces int
	Classes    int
	Methods    int
	Events     int
	Fields     int
}

// ValidateDocument reads a JSON or YAML model document and checks that it
// has the shape produced by the generator.
func ValidateDocument(filename string) (*Summary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// Try JSON
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse file as YAML or JSON: %w", err)
		}
	}
	return Validate(doc)
}

// Validate checks an already decoded document.
func Validate(doc map[string]interface{}) (*Summary, error) {
	namespaces, ok := doc["namespaces"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'namespaces' field")
	}

	summary := &Summary{Namespaces: len(namespaces)}
	seen := map[string]bool{}
	for i, ns := range namespaces {
		name, err := validateNamespace(ns, summary)
		if err != nil {
			return nil, fmt.Errorf("namespace %d: %w", i, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("namespace %d: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return summary, nil
}

func validateNamespace(namespace interface{}, summary *Summary) (string, error) {
	ns, ok := namespace.(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid namespace")
	}

	name, err := requireString(ns, "name")
	if err != nil {
		return "", err
	}
	if v, exists := ns["isGlobal"]; exists {
		if _, ok := v.(bool); !ok {
			return "", fmt.Errorf("invalid 'isGlobal' field")
		}
	}

	classes, ok := ns["classes"].([]interface{})
	if !ok {
		return "", fmt.Errorf("missing or invalid 'classes' field")
	}
	for i, c := range classes {
		if err := validateClass(c, summary); err != nil {
			return "", fmt.Errorf("class %d: %w", i, err)
		}
	}
	summary.Classes += len(classes)
	return name, nil
}

func validateClass(class interface{}, summary *Summary) error {
	c, ok := class.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid class")
	}
	if _, err := requireString(c, "name"); err != nil {
		return err
	}

	methods, err := optionalList(c, "methods")
	if err != nil {
		return err
	}
	for i, m := range methods {
		if err := validateMethod(m); err != nil {
			return fmt.Errorf("method %d: %w", i, err)
		}
	}

	events, err := optionalList(c, "eventHandlers")
	if err != nil {
		return err
	}
	for i, e := range events {
		if err := validateMember(e, "handlerType"); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}

	fields, err := optionalList(c, "fields")
	if err != nil {
		return err
	}
	for i, f := range fields {
		if err := validateMember(f, "type"); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}

	summary.Methods += len(methods)
	summary.Events += len(events)
	summary.Fields += len(fields)
	return validateAnnotations(c)
}

func validateMethod(method interface{}) error {
	if err := validateMember(method, "returnType"); err != nil {
		return err
	}
	m := method.(map[string]interface{})

	params, err := optionalList(m, "params")
	if err != nil {
		return err
	}
	for i, p := range params {
		param, ok := p.(map[string]interface{})
		if !ok {
			return fmt.Errorf("parameter %d: invalid parameter", i)
		}
		if _, err := requireString(param, "name"); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
		if _, ok := param["type"].(string); !ok {
			return fmt.Errorf("parameter %d: missing 'type' field", i)
		}
	}
	return nil
}

// validateMember checks the name and the given type field of a member.
func validateMember(member interface{}, typeField string) error {
	m, ok := member.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid member")
	}
	if _, err := requireString(m, "name"); err != nil {
		return err
	}
	if _, err := requireString(m, typeField); err != nil {
		return err
	}
	return validateAnnotations(m)
}

func validateAnnotations(owner map[string]interface{}) error {
	for _, key := range []string{"useCases", "limitations"} {
		items, err := optionalList(owner, key)
		if err != nil {
			return err
		}
		for i, item := range items {
			a, ok := item.(map[string]interface{})
			if !ok {
				return fmt.Errorf("%s %d: invalid entry", key, i)
			}
			if _, ok := a["title"].(string); !ok {
				return fmt.Errorf("%s %d: missing 'title' field", key, i)
			}
		}
	}
	return nil
}

func requireString(obj map[string]interface{}, key string) (string, error) {
	s, ok := obj[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("missing or empty '%s' field", key)
	}
	return s, nil
}

func optionalList(obj map[string]interface{}, key string) ([]interface{}, error) {
	v, exists := obj[key]
	if !exists || v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid '%s' field", key)
	}
	return list, nil
}
