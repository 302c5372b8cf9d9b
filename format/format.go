package format

import (
	"fmt"
	"text2phenotype.com/nlg/types"
	"strings"
)

// Formatter lays out a realised tree.
type Formatter func(el types.Element) (string, error)

// ForName returns the formatter of an output format named in a
// configuration. An empty name means plain text.
func ForName(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", types.FormatText:
		return func(el types.Element) (string, error) {
			return Text(el), nil
		}, nil
	case types.FormatHTML:
		return HTMLString, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
