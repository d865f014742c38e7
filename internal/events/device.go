package events

// Device traffic is keyed by the reader's MAC address so one reader's
// messages stay ordered on a single partition.
const (
	DeviceEventsTopic        = "attendance.device-events"
	DeviceRepliesTopic       = "attendance.device-replies"
	DeviceCommandsTopic      = "attendance.device-commands"
	DeviceVerificationsTopic = "attendance.device-verifications"
)

// DeviceReply is the text a reader shows after an event was handled.
type DeviceReply struct {
	DeviceMac string `json:"device_mac"`
	Message   string `json:"message"`
}
