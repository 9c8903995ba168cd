// Package source resolves which files a scan looks at. Sources are tried in
// a fixed priority order; the first one that yields files wins, so tracked
// files are preferred over whatever else happens to be on disk.
package source
