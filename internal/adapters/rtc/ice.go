package rtc

import (
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/dkeye/chathub/internal/config"
)

// Calls are peer to peer and the hub only relays signaling, but clients
// still need to agree on STUN/TURN servers. This package hands them out.

func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

// ConfigFromServers falls back to DefaultWebRTCConfig when none are set.
func ConfigFromServers(servers []config.ICEServer) webrtc.Configuration {
	if len(servers) == 0 {
		return DefaultWebRTCConfig()
	}
	out := webrtc.Configuration{
		ICEServers: make([]webrtc.ICEServer, 0, len(servers)),
	}
	for _, s := range servers {
		srv := webrtc.ICEServer{URLs: s.URLs}
		if s.Username != "" {
			srv.Username = s.Username
			srv.Credential = s.Credential
		}
		out.ICEServers = append(out.ICEServers, srv)
	}
	return out
}

// Validate lets pion parse the configuration the same way a peer would.
func Validate(cfg webrtc.Configuration) error {
	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return fmt.Errorf("ice servers: %w", err)
	}
	return pc.Close()
}

// ClientICEServer is the RTCIceServer shape browsers expect.
type ClientICEServer struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential string   `json:"credential,omitempty"`
}

type ClientConfig struct {
	ICEServers []ClientICEServer `json:"iceServers"`
}

func ClientConfigFor(servers []config.ICEServer) ClientConfig {
	out := ClientConfig{ICEServers: []ClientICEServer{}}
	if len(servers) == 0 {
		for _, s := range DefaultWebRTCConfig().ICEServers {
			out.ICEServers = append(out.ICEServers, ClientICEServer{URLs: s.URLs})
		}
		return out
	}
	for _, s := range servers {
		if len(s.URLs) == 0 {
			continue
		}
		out.ICEServers = append(out.ICEServers, ClientICEServer{
			URLs:       s.URLs,
			Username:   s.Username,
			Credential: s.Credential,
		})
	}
	return out
}
