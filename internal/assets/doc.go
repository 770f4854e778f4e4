// Package assets provides the HTML template and CSS style of the booking bill.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in bill.html and bill.css
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// A resort can override the look of its bill by pointing the assets
// directory at a folder laid out as:
//
//	{basePath}/
//	├── styles/
//	│   └── bill.css
//	└── templates/
//	    └── bill.html
//
// Only the files present are overridden; anything missing falls back to the
// embedded copy. Asset names cannot contain separators or dots, and the
// filesystem loader refuses paths that resolve outside basePath.
package assets
