// Package docmirror mirrors documentation sites as trees of local Markdown
// files, preserving the site's URL hierarchy. It discovers pages through
// site manifests, sitemaps, or recursive link-following, retrieves raw
// Markdown sources where a site exposes them, and converts rendered HTML
// where it does not.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package docmirror
