// Package manifest reads and stamps version fields in project manifests.
//
// A manifest is any small document that carries a version: the
// .gram-manifest.toml published with each release, a scaffolded meta.json,
// or a plain VERSION file. Structured formats address the field with dot
// notation ("project.version").
package manifest
