// Package version holds build metadata stamped in at link time.
package version

var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
