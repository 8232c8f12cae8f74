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

package frame

import (
	"errors"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"

	"github.com/openwmac/wmac/pkg/private/serrors"
)

// EthernetTypeWAI is the WLAN authentication infrastructure ethertype.
const EthernetTypeWAI layers.EthernetType = 0x88b4

// ErrNotEthernet is returned when a raw frame has no Ethernet header.
var ErrNotEthernet = errors.New("not an ethernet frame")

// Inspect decodes the headers of a raw outbound Ethernet frame and derives
// the scheduling attributes from them. Offload flags and fragment counts are
// not visible in the frame itself and are left for the caller to set.
func Inspect(data []byte) (Attrs, error) {
	var (
		eth   layers.Ethernet
		dot1q layers.Dot1Q
		llc   layers.LLC
		snap  layers.SNAP
		ip4   layers.IPv4
		ip6   layers.IPv6
		udp   layers.UDP
		tcp   layers.TCP
		eapol layers.EAPOL
	)
	parser := gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet,
		&eth, &dot1q, &llc, &snap, &ip4, &ip6, &udp, &tcp, &eapol)
	parser.IgnoreUnsupported = true
	decoded := make([]gopacket.LayerType, 0, 8)
	if err := parser.DecodeLayers(data, &decoded); err != nil {
		return Attrs{}, serrors.JoinNoStack(ErrNotEthernet, err, "len", len(data))
	}
	if len(decoded) == 0 || decoded[0] != layers.LayerTypeEthernet {
		return Attrs{}, serrors.JoinNoStack(ErrNotEthernet, nil, "len", len(data))
	}

	attrs := Attrs{Dst: append([]byte(nil), eth.DstMAC...)}
	if eth.EthernetType == EthernetTypeWAI {
		attrs.ControlPlane = true
	}
	for _, lt := range decoded {
		switch lt {
		case layers.LayerTypeDot1Q:
			attrs.VLAN = true
			attrs.UserPriority = dot1q.Priority
			if dot1q.Type == EthernetTypeWAI {
				attrs.ControlPlane = true
			}
		case layers.LayerTypeSNAP:
			attrs.SNAP = true
		case layers.LayerTypeEAPOL:
			attrs.ControlPlane = true
		case layers.LayerTypeIPv4:
			if !attrs.VLAN {
				attrs.UserPriority = ip4.TOS >> 5
			}
		case layers.LayerTypeIPv6:
			if !attrs.VLAN {
				attrs.UserPriority = ip6.TrafficClass >> 5
			}
		case layers.LayerTypeUDP:
			if isDHCP(udp.SrcPort, udp.DstPort) {
				attrs.ControlPlane = true
			}
		}
	}
	return attrs, nil
}

func isDHCP(src, dst layers.UDPPort) bool {
	switch {
	case src == 68 && dst == 67, src == 67 && dst == 68:
		return true
	case src == 546 && dst == 547, src == 547 && dst == 546:
		return true
	default:
		return false
	}
}
