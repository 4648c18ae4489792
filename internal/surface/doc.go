// Package surface models the editable surface the formatting engine
// operates on: an ordered list of nodes plus the live selection.
//
// The surface is a deliberately small stand-in for whatever rendering
// tree the host actually owns. Hosts sync it to their real surface at
// the boundary; the engine itself never touches a live rendering tree.
//
// Node kinds:
//
//   - KindText: a run of raw text
//   - KindElement: a foreign element (unknown origin, arbitrary children)
//   - KindLine: a canonical line container
//   - KindBreak: a forced line-break marker that keeps an empty line
//     visible and clickable
//
// The canonical shape, established by the structural normalizer in the
// document package, is a surface whose direct children are all KindLine.
// An empty line always carries exactly one KindBreak child, never zero
// children.
//
// Surface is not safe for concurrent use. The engine runs synchronously
// inside the host's event dispatch, which serializes all access.
package surface
