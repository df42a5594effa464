package main

import (
	"errors"
	"fmt"
)

var errUnsupportedFormat = errors.New("unsupported format")

// Format selects how a YAML tree is rendered.
type Format string

const (
	XML  Format = "xml"
	HTML Format = "html"
)

var formats = []Format{XML, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errUnsupportedFormat, s)
}
