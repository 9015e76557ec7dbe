// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"fmt"
	"io"

	"github.com/confluxkit/conflux/internal/try"

	"github.com/pelletier/go-toml/v2"
)

// InvalidTomlError occurs if the underlying io.Reader contains invalid TOML.
type InvalidTomlError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidTomlError) Error() string {
	return fmt.Sprintf("invalid toml: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidTomlError) Unwrap() error {
	return e.cause
}

// FromToml returns a Source over TOML parsed from the given io.Reader.
// The reader is closed if it implements io.Closer.
func FromToml(r io.Reader) (_ Source, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return Source{}, err
	}

	m := make(map[string]any)
	err = toml.Unmarshal(b, &m)
	if err != nil {
		return Source{}, InvalidTomlError{cause: err}
	}
	return FromTree("toml", anyToTree(m), LeafForSequenceInvalid), nil
}
