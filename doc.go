// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package conflux reconciles heterogeneous configuration sources into a
// single typed value, and serializes that value back into the same tree
// shape the sources were read from.
//
// The package is built around [Descriptor], a bidirectional schema: one
// expression describes both how to read a typed value out of a
// [source.Source] and how to write it back into a [tree.Tree]. Descriptors
// compose from scalar leaves with combinators for nesting, conjunction,
// disjunction, repetition, optionality, defaults and transformation.
//
// # Basic usage
//
// Describe a configuration shape once:
//
//	type DB struct {
//		Host string
//		Port int
//	}
//
//	desc := conflux.Transform(
//		conflux.Nested("db", conflux.Zip(conflux.String("host"), conflux.Int("port"))),
//		func(p conflux.Pair[string, int]) (DB, error) {
//			return DB{Host: p.First, Port: p.Second}, nil
//		},
//		func(db DB) (conflux.Pair[string, int], error) {
//			return conflux.PairOf(db.Host, db.Port), nil
//		},
//	)
//
// Then read it from any composition of sources:
//
//	src := source.FromArgs(os.Args[1:], source.WithKeyDelimiter(".")).
//		OrElse(source.FromEnv())
//
//	db, err := conflux.Read(desc, src)
//
// And write it back into a tree any format adapter can serialize:
//
//	t, err := conflux.Write(desc, db)
//
// # Error reporting
//
// Reading accumulates independent failures: both sides of a [Zip] report
// together, so one round of fixes suffices. [FormatError] renders the
// structured failure as an indented report naming every failing path, the
// offending raw value and the expected kind.
package conflux
