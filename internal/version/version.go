// Package version holds build information injected with ldflags:
//
//	-X 'mitoseqfix/internal/version.Version=v1.0.0'
//	-X 'mitoseqfix/internal/version.CommitHash=abc123'
package version

var (
	Version    = "dev"
	CommitHash = "unknown"
)

// Info is the build information reported by /healthz.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, CommitHash: CommitHash}
}
