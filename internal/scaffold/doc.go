// Package scaffold generates new Go projects from embedded templates.
//
// Every project receives a go.mod, README, .gitignore, a .gram-manifest.toml
// and a meta.json, plus the files of the chosen template. Both manifests are
// stamped with InitialVersion after rendering.
package scaffold
