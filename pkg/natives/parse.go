package natives

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes catalog text of the form
//
//	{"<namespace>": {"<key>": {"name": ..., "params": [...], ...}}}
//
// Go maps do not keep insertion order, so both object levels are walked
// token by token and only the function bodies go through json.Unmarshal.
// A repeated key keeps its first position and its last value.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{', "catalog"); err != nil {
		return nil, err
	}

	catalog := &Catalog{}
	seen := make(map[string]int)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		functions, err := parseNamespace(dec, name)
		if err != nil {
			return nil, err
		}
		if i, ok := seen[name]; ok {
			catalog.Namespaces[i].Functions = functions
			continue
		}
		seen[name] = len(catalog.Namespaces)
		catalog.Namespaces = append(catalog.Namespaces, Namespace{Name: name, Functions: functions})
	}

	if err := expectDelim(dec, '}', "catalog"); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after catalog object at offset %d", dec.InputOffset())
	}
	return catalog, nil
}

func parseNamespace(dec *json.Decoder, namespace string) ([]Entry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("namespace %s: %w", namespace, err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("namespace %s: expected object, got %v at offset %d", namespace, tok, dec.InputOffset())
	}

	var entries []Entry
	seen := make(map[string]int)
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("namespace %s: %w", namespace, err)
		}
		var fn Function
		if err := dec.Decode(&fn); err != nil {
			return nil, fmt.Errorf("namespace %s, function %s: %w", namespace, key, err)
		}
		if err := fn.validate(); err != nil {
			return nil, fmt.Errorf("namespace %s, function %s: %w", namespace, key, err)
		}
		if i, ok := seen[key]; ok {
			entries[i].Function = fn
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, Entry{Key: key, Function: fn})
	}

	if err := expectDelim(dec, '}', "namespace "+namespace); err != nil {
		return nil, err
	}
	return entries, nil
}

// validate checks the fields rendering cannot do without.
func (f *Function) validate() error {
	if f.Name == "" {
		return errors.New("missing name")
	}
	if f.ReturnType == "" {
		return errors.New("missing return_type")
	}
	for i, p := range f.Params {
		if p.Type == "" {
			return fmt.Errorf("param %d: missing type", i)
		}
		if p.Name == "" {
			return fmt.Errorf("param %d: missing name", i)
		}
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v at offset %d", tok, dec.InputOffset())
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, what string) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: unexpected end of input", what)
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%s: expected %q, got %v at offset %d", what, want, tok, dec.InputOffset())
	}
	return nil
}
