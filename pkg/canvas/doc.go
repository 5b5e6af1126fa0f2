// Package canvas defines the editable signage document and its snapshot
// format.
//
// A [Document] is an ordered list of [Object] values plus free-form
// metadata. Objects are positioned by their centre (Left, Top) and sized by
// Width/Height times ScaleX/ScaleY, which lets them act as [layout.Item]
// values for distribution and alignment.
//
// # Snapshots
//
// [Serialize] turns a document into a deterministic JSON string. Only an
// explicit allowlist of attributes is written (geometry, identity, lock and
// visibility flags, fill, text and custom data) in a fixed field order, and
// maps are written with sorted keys, so two equivalent documents always
// produce byte-identical snapshots. [Deserialize] reverses it and reports
// undecodable input with errors.ErrCodeCorruptSnapshot.
package canvas
