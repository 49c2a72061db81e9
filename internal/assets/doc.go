// Package assets provides the stylesheets and HTML templates used to turn a
// rendered redmark fragment into a standalone page.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes and templates (go:embed)
//	    ├── FilesystemLoader  - user-provided directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory may override any single asset; everything it does not
// provide comes from the embedded set.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # page theme (e.g. paper.css)
//	└── templates/
//	    └── {name}/
//	        ├── page.html        # document shell
//	        └── header.html      # post header (title, author, date, tags)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
