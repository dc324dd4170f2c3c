// Package protocol defines the JSON frames exchanged over /ws.
package protocol

// Kind is the inbound "type" discriminant.
type Kind string

const (
	KindSubscribe Kind = "subscribe"
	KindAuxUpdate Kind = "aux_update"

	KindCallOffer     Kind = "call_offer"
	KindCallAnswer    Kind = "call_answer"
	KindICECandidate  Kind = "ice_candidate"
	KindCallEnd       Kind = "call_end"
	KindCallDecline   Kind = "call_decline"
	KindCallBusy      Kind = "call_busy"
	KindCallTimeout   Kind = "call_timeout"
	KindCallRinging   Kind = "call_ringing"
	KindCallConnected Kind = "call_connected"
)

var signalKinds = map[Kind]struct{}{
	KindCallOffer:     {},
	KindCallAnswer:    {},
	KindICECandidate:  {},
	KindCallEnd:       {},
	KindCallDecline:   {},
	KindCallBusy:      {},
	KindCallTimeout:   {},
	KindCallRinging:   {},
	KindCallConnected: {},
}

// IsSignal reports whether k belongs to the call-negotiation vocabulary.
func IsSignal(k Kind) bool {
	_, ok := signalKinds[k]
	return ok
}

// EventType is the outbound "type".
type EventType string

const (
	EventNewMessage           EventType = "new_message"
	EventMessageUpdated       EventType = "message_updated"
	EventMessageDeleted       EventType = "message_deleted"
	EventReactionAdded        EventType = "reaction_added"
	EventReactionRemoved      EventType = "reaction_removed"
	EventNewNotification      EventType = "new_notification"
	EventNewMeeting           EventType = "new_meeting"
	EventAuxStatusUpdate      EventType = "aux_status_update"
	EventEmployeeStatusUpdate EventType = "employee_status_update"
)
