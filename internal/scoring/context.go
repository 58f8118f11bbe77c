package scoring

import (
	"fmt"
	"strings"

	"github.com/zantetsu/zantetsu/internal/types"
)

// DeviceType affects how much resolution is worth to a client.
type DeviceType int

const (
	// DeviceDesktop takes whatever it gets.
	DeviceDesktop DeviceType = iota
	// DeviceLaptop slightly prefers 1080p over 4K.
	DeviceLaptop
	// DeviceMobile strongly prefers 720p and below.
	DeviceMobile
	// DeviceTV prefers the highest resolution available.
	DeviceTV
	// DeviceEmbedded caps out around 720p.
	DeviceEmbedded
)

func (d DeviceType) String() string {
	switch d {
	case DeviceDesktop:
		return "desktop"
	case DeviceLaptop:
		return "laptop"
	case DeviceMobile:
		return "mobile"
	case DeviceTV:
		return "tv"
	case DeviceEmbedded:
		return "embedded"
	}
	return "unknown"
}

// ParseDeviceType converts a config string to a DeviceType.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop", "":
		return DeviceDesktop, nil
	case "laptop":
		return DeviceLaptop, nil
	case "mobile":
		return DeviceMobile, nil
	case "tv":
		return DeviceTV, nil
	case "embedded":
		return DeviceEmbedded, nil
	}
	return 0, fmt.Errorf("unknown device type %q", s)
}

// NetworkQuality affects bitrate tolerance.
type NetworkQuality int

const (
	// NetworkUnlimited has no bandwidth constraints.
	NetworkUnlimited NetworkQuality = iota
	// NetworkBroadband slightly penalizes 4K remux bitrates.
	NetworkBroadband
	// NetworkLimited strongly penalizes large files.
	NetworkLimited
	// NetworkOffline serves only local files; no transfer penalty.
	NetworkOffline
)

func (n NetworkQuality) String() string {
	switch n {
	case NetworkUnlimited:
		return "unlimited"
	case NetworkBroadband:
		return "broadband"
	case NetworkLimited:
		return "limited"
	case NetworkOffline:
		return "offline"
	}
	return "unknown"
}

// ParseNetworkQuality converts a config string to a NetworkQuality.
func ParseNetworkQuality(s string) (NetworkQuality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unlimited", "":
		return NetworkUnlimited, nil
	case "broadband":
		return NetworkBroadband, nil
	case "limited":
		return NetworkLimited, nil
	case "offline":
		return NetworkOffline, nil
	}
	return 0, fmt.Errorf("unknown network quality %q", s)
}

// ClientContext describes the consuming client for score adjustment.
type ClientContext struct {
	// Device affects resolution preference.
	Device DeviceType
	// Network affects bitrate tolerance.
	Network NetworkQuality
	// HWDecodeCodecs lists the client's hardware-decodable video
	// codecs; files outside this set get a severe codec penalty.
	HWDecodeCodecs []types.VideoCodec
}

// DefaultContext is a desktop client on an unconstrained network with
// the near-universal H.264/HEVC decode blocks.
func DefaultContext() ClientContext {
	return ClientContext{
		Device:         DeviceDesktop,
		Network:        NetworkUnlimited,
		HWDecodeCodecs: []types.VideoCodec{types.H264, types.HEVC},
	}
}

// AdjustScores applies context multipliers to a copy of scores and
// returns it. Adjustments apply in a fixed order: device multiplier on
// resolution, network multiplier on resolution and video codec, then
// the hardware-decode penalty on video codec.
func (c ClientContext) AdjustScores(scores QualityScores, fileCodec *types.VideoCodec) QualityScores {
	if scores.Resolution != nil {
		v := *scores.Resolution * c.resolutionMultiplier(*scores.Resolution)
		scores.Resolution = &v
	}

	networkMult := c.networkMultiplier()
	if scores.Resolution != nil {
		v := *scores.Resolution * networkMult
		scores.Resolution = &v
	}
	if scores.VideoCodec != nil {
		v := *scores.VideoCodec * networkMult
		scores.VideoCodec = &v
	}

	if fileCodec != nil && scores.VideoCodec != nil && !c.canHWDecode(*fileCodec) {
		v := *scores.VideoCodec * 0.1
		scores.VideoCodec = &v
	}
	return scores
}

func (c ClientContext) canHWDecode(codec types.VideoCodec) bool {
	for _, supported := range c.HWDecodeCodecs {
		if supported == codec {
			return true
		}
	}
	return false
}

func (c ClientContext) resolutionMultiplier(resScore float64) float64 {
	switch c.Device {
	case DeviceLaptop:
		if resScore > 0.9 {
			return 0.85
		}
	case DeviceMobile:
		if resScore > 0.6 {
			return 0.6
		}
	case DeviceEmbedded:
		if resScore > 0.5 {
			return 0.5
		}
	}
	return 1.0
}

func (c ClientContext) networkMultiplier() float64 {
	switch c.Network {
	case NetworkBroadband:
		return 0.9
	case NetworkLimited:
		return 0.3
	}
	// Unlimited has no constraint; offline files are already local.
	return 1.0
}
