// Package assets provides the page templates and stylesheets for the site.
//
// # Loaders
//
// Every theme is read through FSLoader, an AssetLoader over an fs.FS:
//
//	Builtin()           the theme compiled into the binary (go:embed)
//	OpenDir(path)       a theme directory on disk, confined by os.Root
//	NewResolver(a, b)   chains loaders, first hit wins
//
// NewAssetResolver(basePath) is what the site uses: the directory at
// basePath layered over Builtin, so a theme may override one page or
// stylesheet and inherit the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # Stylesheets served under /static/
//	└── templates/
//	    ├── layout.html     # Document shell, defines the "content" block
//	    ├── index.html
//	    ├── blog.html
//	    ├── post.html
//	    └── notfound.html
//
// # Security
//
// Asset names must be bare stems (no separators, no dots). Directory themes
// are opened with os.OpenRoot, which refuses paths and symlinks that leave
// the directory.
package assets
