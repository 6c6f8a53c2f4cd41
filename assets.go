package ahpgen

import (
	"io/fs"

	"github.com/goliatone/go-ahpgen/pkg/templates"
)

// StaticAssetsFS exposes the browser assets (scripts.js, styles.css) so Go
// applications can serve them next to a generated page.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(ahpgen.StaticAssetsFS()),
//	  ),
//	)
func StaticAssetsFS() fs.FS {
	return templates.StaticFS()
}
