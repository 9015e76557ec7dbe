// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"fmt"
	"io"

	"github.com/confluxkit/conflux/internal/try"

	"github.com/magiconair/properties"
)

// InvalidPropertiesError occurs if the underlying io.Reader contains an
// invalid properties file.
type InvalidPropertiesError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidPropertiesError) Error() string {
	return fmt.Sprintf("invalid properties: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidPropertiesError) Unwrap() error {
	return e.cause
}

// FromProperties returns a Source over a Java-style properties file parsed
// from the given io.Reader. Dotted keys split into nested path segments.
// The reader is closed if it implements io.Closer.
func FromProperties(r io.Reader) (_ Source, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return Source{}, err
	}

	p, err := properties.Load(b, properties.UTF8)
	if err != nil {
		return Source{}, InvalidPropertiesError{cause: err}
	}

	src := FromMap("properties", p.Map(), ".")
	return src, nil
}
