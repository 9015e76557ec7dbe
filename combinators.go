// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package conflux

import (
	"errors"

	"github.com/confluxkit/conflux/source"
	"github.com/confluxkit/conflux/tree"
)

var (
	errSingleValueForSequence = errors.New("a single value cannot satisfy a sequence for this source")
	errRecordForSequence      = errors.New("expected a sequence, found a record")
)

type nestedDesc[A any] struct {
	key   string
	inner Descriptor[A]
}

// Nested scopes the inner descriptor one level down into the named record
// field, both for reading and writing.
func Nested[A any](key string, inner Descriptor[A]) Descriptor[A] {
	return nestedDesc[A]{key: key, inner: inner}
}

func (d nestedDesc[A]) read(rc readContext) (A, error) {
	return d.inner.read(rc.at(d.key))
}

func (d nestedDesc[A]) write(v A) (tree.Tree[string], error) {
	t, err := d.inner.write(v)
	if err != nil {
		return nil, err
	}
	return tree.Record[string]{Entries: map[string]tree.Tree[string]{d.key: t}}, nil
}

type zipDesc[A, B any] struct {
	left  Descriptor[A]
	right Descriptor[B]
}

// Zip conjoins two descriptors into one producing a [Pair]. Reading
// requires both sides; when both fail, both failures are reported so one
// error report is enough to fix the whole configuration. Writing splits
// the pair and unions the two trees, which must address disjoint paths.
func Zip[A, B any](left Descriptor[A], right Descriptor[B]) Descriptor[Pair[A, B]] {
	return zipDesc[A, B]{left: left, right: right}
}

func (d zipDesc[A, B]) read(rc readContext) (Pair[A, B], error) {
	a, lerr := d.left.read(rc)
	b, rerr := d.right.read(rc)
	if lerr != nil && rerr != nil {
		return Pair[A, B]{}, AndError{Errors: combine(lerr, rerr)}
	}
	if lerr != nil {
		return Pair[A, B]{}, lerr
	}
	if rerr != nil {
		return Pair[A, B]{}, rerr
	}
	return PairOf(a, b), nil
}

// combine flattens nested accumulations so a chain of zips reports one
// flat list of failures.
func combine(errs ...error) []error {
	var out []error
	for _, err := range errs {
		if and, ok := err.(AndError); ok {
			out = append(out, and.Errors...)
			continue
		}
		out = append(out, err)
	}
	return out
}

func (d zipDesc[A, B]) write(v Pair[A, B]) (tree.Tree[string], error) {
	left, err := d.left.write(v.First)
	if err != nil {
		return nil, err
	}
	right, err := d.right.write(v.Second)
	if err != nil {
		return nil, err
	}
	return tree.MergeStrict[string](left, right)
}

type orElseEitherDesc[A, B any] struct {
	left  Descriptor[A]
	right Descriptor[B]
}

// OrElseEither disjoins two descriptors of different types into one
// producing an [Either]. Reading tries left first and falls back to right
// only on recoverable failures (missing or malformed values, not source
// failures). Writing dispatches on the side that is set.
func OrElseEither[A, B any](left Descriptor[A], right Descriptor[B]) Descriptor[Either[A, B]] {
	return orElseEitherDesc[A, B]{left: left, right: right}
}

func (d orElseEitherDesc[A, B]) read(rc readContext) (Either[A, B], error) {
	a, lerr := d.left.read(rc)
	if lerr == nil {
		return LeftOf[A, B](a), nil
	}
	if !recoverable(lerr) {
		return Either[A, B]{}, lerr
	}

	b, rerr := d.right.read(rc)
	if rerr == nil {
		return RightOf[A, B](b), nil
	}
	return Either[A, B]{}, OrError{Left: lerr, Right: rerr}
}

func (d orElseEitherDesc[A, B]) write(v Either[A, B]) (tree.Tree[string], error) {
	if a, ok := v.Left(); ok {
		return d.left.write(a)
	}
	if b, ok := v.Right(); ok {
		return d.right.write(b)
	}
	return nil, EmptyEitherError{}
}

type orElseDesc[A any] struct {
	left  Descriptor[A]
	right Descriptor[A]
}

// OrElse disjoins two descriptors of the same type. Reading tries left
// first and falls back to right on recoverable failures. Writing always
// goes through the left branch.
func OrElse[A any](left, right Descriptor[A]) Descriptor[A] {
	return orElseDesc[A]{left: left, right: right}
}

func (d orElseDesc[A]) read(rc readContext) (A, error) {
	a, lerr := d.left.read(rc)
	if lerr == nil {
		return a, nil
	}
	if !recoverable(lerr) {
		var zero A
		return zero, lerr
	}

	a, rerr := d.right.read(rc)
	if rerr == nil {
		return a, nil
	}
	var zero A
	return zero, OrError{Left: lerr, Right: rerr}
}

func (d orElseDesc[A]) write(v A) (tree.Tree[string], error) {
	return d.left.write(v)
}

type sequenceDesc[A any] struct {
	inner Descriptor[A]
}

// SequenceOf describes an ordered list at the current node, reading the
// inner descriptor against every element. When the source's
// LeafForSequence policy is valid, a bare scalar satisfies the list as a
// single element.
func SequenceOf[A any](inner Descriptor[A]) Descriptor[[]A] {
	return sequenceDesc[A]{inner: inner}
}

// Sequence describes an ordered list under the given key.
func Sequence[A any](key string, inner Descriptor[A]) Descriptor[[]A] {
	return Nested(key, SequenceOf(inner))
}

func (d sequenceDesc[A]) read(rc readContext) ([]A, error) {
	t, err := rc.lookup()
	if err != nil {
		return nil, err
	}
	if t.IsEmpty() {
		return nil, MissingValueError{Path: rc.path}
	}

	var elems []tree.Tree[string]
	switch x := t.(type) {
	case tree.Sequence[string]:
		elems = x.Elems
	case tree.Leaf[string]:
		if rc.src.LeafForSequence() != source.LeafForSequenceValid {
			return nil, ConversionError{
				Path:     rc.path,
				Raw:      x.Value,
				Expected: "sequence",
				Cause:    errSingleValueForSequence,
			}
		}
		elems = []tree.Tree[string]{x}
	default:
		return nil, ConversionError{
			Path:     rc.path,
			Expected: "sequence",
			Cause:    errRecordForSequence,
		}
	}

	out := make([]A, 0, len(elems))
	for i, elem := range elems {
		erc := readContext{
			src: source.FromTree(rc.src.Name(), elem, rc.src.LeafForSequence()),
		}
		v, err := d.inner.read(erc)
		if err != nil {
			return nil, AtIndexError{Path: rc.path, Index: i, Cause: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func (d sequenceDesc[A]) write(vs []A) (tree.Tree[string], error) {
	elems := make([]tree.Tree[string], len(vs))
	for i, v := range vs {
		t, err := d.inner.write(v)
		if err != nil {
			return nil, err
		}
		elems[i] = t
	}
	return tree.Sequence[string]{Elems: elems}, nil
}

type optionalDesc[A any] struct {
	inner Descriptor[A]
}

// Optional makes absence a success: when the subtree at the current scope
// is entirely missing, reading yields an unset [Value]. A present but
// malformed subtree still fails. Writing an unset value yields Empty.
func Optional[A any](inner Descriptor[A]) Descriptor[Value[A]] {
	return optionalDesc[A]{inner: inner}
}

// OptionalAt scopes Optional under the given key, which is the common form
// for optional leaves: absence of the key reads as unset.
func OptionalAt[A any](key string, inner Descriptor[A]) Descriptor[Value[A]] {
	return Nested(key, Optional(inner))
}

func (d optionalDesc[A]) read(rc readContext) (Value[A], error) {
	t, err := rc.lookup()
	if err != nil {
		return Value[A]{}, err
	}
	if t.IsEmpty() {
		return Value[A]{}, nil
	}

	v, err := d.inner.read(rc)
	if err != nil {
		return Value[A]{}, err
	}
	return ValueOf(v), nil
}

func (d optionalDesc[A]) write(v Value[A]) (tree.Tree[string], error) {
	a, ok := v.Value()
	if !ok {
		return tree.Empty[string]{}, nil
	}
	return d.inner.write(a)
}

type defaultDesc[A any] struct {
	inner    Descriptor[A]
	fallback A
}

// Default substitutes a literal when reading fails solely because values
// are missing. Malformed values still fail. Defaults are read-time only:
// writing always goes through the inner descriptor.
func Default[A any](inner Descriptor[A], fallback A) Descriptor[A] {
	return defaultDesc[A]{inner: inner, fallback: fallback}
}

func (d defaultDesc[A]) read(rc readContext) (A, error) {
	v, err := d.inner.read(rc)
	if err == nil {
		return v, nil
	}
	if missingOnly(err) {
		return d.fallback, nil
	}
	var zero A
	return zero, err
}

func (d defaultDesc[A]) write(v A) (tree.Tree[string], error) {
	return d.inner.write(v)
}

type transformDesc[A, B any] struct {
	inner    Descriptor[A]
	forward  func(A) (B, error)
	backward func(B) (A, error)
}

// Transform changes the produced type through a fallible forward
// conversion and a backward conversion used when writing. The forward
// failure channel is where business-level validation belongs.
func Transform[A, B any](inner Descriptor[A], forward func(A) (B, error), backward func(B) (A, error)) Descriptor[B] {
	return transformDesc[A, B]{inner: inner, forward: forward, backward: backward}
}

func (d transformDesc[A, B]) read(rc readContext) (B, error) {
	var zero B

	a, err := d.inner.read(rc)
	if err != nil {
		return zero, err
	}

	b, err := d.forward(a)
	if err != nil {
		return zero, ConversionError{
			Path:     rc.path,
			Expected: "transformed value",
			Cause:    err,
		}
	}
	return b, nil
}

func (d transformDesc[A, B]) write(v B) (tree.Tree[string], error) {
	a, err := d.backward(v)
	if err != nil {
		return nil, err
	}
	return d.inner.write(a)
}

type describeDesc[A any] struct {
	inner Descriptor[A]
	doc   string
}

// Describe attaches documentation to a descriptor. It has no effect on
// reading or writing.
func Describe[A any](inner Descriptor[A], doc string) Descriptor[A] {
	return describeDesc[A]{inner: inner, doc: doc}
}

func (d describeDesc[A]) read(rc readContext) (A, error) {
	return d.inner.read(rc)
}

func (d describeDesc[A]) write(v A) (tree.Tree[string], error) {
	return d.inner.write(v)
}

type sourcedDesc[A any] struct {
	inner Descriptor[A]
	src   source.Source
}

// FromSource binds a specific source to the inner descriptor, overriding
// the ambient one for that subtree only. Writing is unaffected.
func FromSource[A any](inner Descriptor[A], src source.Source) Descriptor[A] {
	return sourcedDesc[A]{inner: inner, src: src}
}

func (d sourcedDesc[A]) read(rc readContext) (A, error) {
	return d.inner.read(readContext{src: d.src, path: rc.path})
}

func (d sourcedDesc[A]) write(v A) (tree.Tree[string], error) {
	return d.inner.write(v)
}
