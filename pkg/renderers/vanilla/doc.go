// Package vanilla renders a form configuration as dependency-free HTML.
// The markup uses semantic chrome classes so host applications can style
// forms with their own CSS or a theme manifest.
package vanilla
