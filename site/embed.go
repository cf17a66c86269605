// ABOUTME: Embeds the site templates and static assets into the binary.
// ABOUTME: Uses explicit globs because //go:embed does not recurse wildcards.
package site

import "embed"

//go:embed templates/base.html templates/pages/*.html static/css/*.css
var ContentFS embed.FS
