package collect

import "github.com/safchain/ethtool"

// linkSpeedMbps queries the negotiated link speed via ethtool.
// Virtual and wireless interfaces report no speed; that is not an error.
func linkSpeedMbps(name string) int {
	tool, err := ethtool.NewEthtool()
	if err != nil {
		return 0
	}
	defer tool.Close()

	cmd := ethtool.EthtoolCmd{}
	speed, err := tool.CmdGet(&cmd, name)
	if err != nil || speed == 0 || speed == ^uint32(0) {
		return 0
	}
	return int(speed)
}
