package assets

import "embed"

//go:embed styles templates
var builtin embed.FS

// Builtin returns the loader for the theme compiled into the binary.
func Builtin() *FSLoader {
	return NewFSLoader(builtin, "builtin theme")
}
