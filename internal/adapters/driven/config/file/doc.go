// Package file provides file-backed configuration for Radar.
//
// Run inputs (the repository list and the excluded-domain list) are
// YAML files kept next to the data they describe. App settings (the
// GitHub token and the default bucketing threshold) live in a TOML
// file under the user's home directory, separate from run inputs so a
// token never ends up in a shareable config.
package file
