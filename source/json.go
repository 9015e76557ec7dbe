// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/confluxkit/conflux/internal/try"
)

// InvalidJsonError occurs if the underlying io.Reader contains invalid JSON.
type InvalidJsonError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidJsonError) Unwrap() error {
	return e.cause
}

// FromJson returns a Source over JSON parsed from the given io.Reader.
// The reader is closed if it implements io.Closer.
func FromJson(r io.Reader) (_ Source, err error) {
	defer try.Close(&err, r)

	dec := json.NewDecoder(r)
	dec.UseNumber()

	m := make(map[string]any)
	err = dec.Decode(&m)
	if err != nil {
		return Source{}, InvalidJsonError{cause: err}
	}
	return FromTree("json", anyToTree(m), LeafForSequenceInvalid), nil
}
