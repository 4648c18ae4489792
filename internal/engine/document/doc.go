// Package document provides the Document: the ordered sequence of lines
// the formatting engine operates on, viewed over an editable surface.
//
// The package owns the structural normalizer, which rewrites an
// arbitrarily mutated surface into the canonical shape where every
// direct child is a line container. Normalization mutates the surface
// synchronously and never fails; the worst case is a no-op.
//
// Each content-mutating pass bumps the document's revision, following
// the revision tracking scheme of the editing engine.
package document
