package models

// DeviceSession is returned when a mattress cover is paired
type DeviceSession struct {
	SessionID       string           `json:"session_id"`
	SerialNumber    string           `json:"serial_number"`
	Token           string           `json:"token"`
	ExpiresAt       int64            `json:"expires_at"` // Unix seconds
	ConnectionSteps []ConnectionStep `json:"connection_steps"`
}

// ConnectionStep is one stage of the pairing handshake shown to the user
type ConnectionStep struct {
	Message  string  `json:"message"`
	Progress float64 `json:"progress"` // 0-1
}

// PairRequest is the body of POST /devices/pair
type PairRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
}
