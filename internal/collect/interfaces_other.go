//go:build !linux

package collect

// linkSpeedMbps is only implemented via ethtool on Linux.
func linkSpeedMbps(name string) int {
	return 0
}
