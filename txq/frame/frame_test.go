// Copyright 2026 The openwmac Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frame_test

import (
	"net"
	"testing"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwmac/wmac/txq/frame"
)

var (
	srcMAC   = net.HardwareAddr{0x02, 0, 0, 0, 0, 1}
	dstMAC   = net.HardwareAddr{0x02, 0, 0, 0, 0, 2}
	groupMAC = net.HardwareAddr{0x01, 0, 0x5e, 0, 0, 1}
)

func TestFromUserPriority(t *testing.T) {
	want := map[uint8]frame.AccessCategory{
		0: frame.BestEffort,
		1: frame.Background,
		2: frame.Background,
		3: frame.BestEffort,
		4: frame.Video,
		5: frame.Video,
		6: frame.Voice,
		7: frame.Voice,
	}
	for up, ac := range want {
		assert.Equal(t, ac, frame.FromUserPriority(up), "up %d", up)
	}
}

func TestFrameHelpers(t *testing.T) {
	f := frame.New(make([]byte, 100), frame.Attrs{Dst: groupMAC})
	assert.True(t, f.Multicast())
	assert.Equal(t, 100, f.Len())
	assert.Equal(t, 1, f.FragmentCount())

	f = frame.New(nil, frame.Attrs{Dst: dstMAC, Fragments: 3, VLAN: true, SNAP: true})
	assert.False(t, f.Multicast())
	assert.Equal(t, 3, f.FragmentCount())
	assert.Equal(t, 26, f.MinAggregateLen())

	mgmt := frame.New(nil, frame.Attrs{Mgmt: true, UserPriority: 1})
	assert.Equal(t, frame.Voice, mgmt.AccessCategory())
}

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	t.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, ls...))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		TOS:      5 << 5,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IP{10, 0, 0, 1},
		DstIP:    net.IP{10, 0, 0, 2},
	}

	t.Run("udp with dscp", func(t *testing.T) {
		udp := &layers.UDP{SrcPort: 4000, DstPort: 5000}
		require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
		raw := serialize(t,
			&layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4},
			ip, udp, gopacket.Payload(make([]byte, 64)),
		)
		attrs, err := frame.Inspect(raw)
		require.NoError(t, err)
		assert.Equal(t, dstMAC, attrs.Dst)
		assert.Equal(t, uint8(5), attrs.UserPriority)
		assert.False(t, attrs.ControlPlane)
	})

	t.Run("dhcp", func(t *testing.T) {
		udp := &layers.UDP{SrcPort: 68, DstPort: 67}
		require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
		raw := serialize(t,
			&layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4},
			ip, udp, gopacket.Payload(make([]byte, 32)),
		)
		attrs, err := frame.Inspect(raw)
		require.NoError(t, err)
		assert.True(t, attrs.ControlPlane)
	})

	t.Run("vlan priority", func(t *testing.T) {
		raw := serialize(t,
			&layers.Ethernet{SrcMAC: srcMAC, DstMAC: groupMAC, EthernetType: layers.EthernetTypeDot1Q},
			&layers.Dot1Q{Priority: 6, VLANIdentifier: 10, Type: layers.EthernetTypeIPv4},
			ip, gopacket.Payload(make([]byte, 20)),
		)
		attrs, err := frame.Inspect(raw)
		require.NoError(t, err)
		assert.True(t, attrs.VLAN)
		assert.Equal(t, uint8(6), attrs.UserPriority)
		assert.True(t, frame.New(raw, attrs).Multicast())
	})

	t.Run("wai", func(t *testing.T) {
		raw := serialize(t,
			&layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: frame.EthernetTypeWAI},
			gopacket.Payload(make([]byte, 40)),
		)
		attrs, err := frame.Inspect(raw)
		require.NoError(t, err)
		assert.True(t, attrs.ControlPlane)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := frame.Inspect([]byte{1, 2, 3})
		assert.ErrorIs(t, err, frame.ErrNotEthernet)
	})
}
