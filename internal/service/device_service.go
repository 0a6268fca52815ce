package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jengzang/pressuremap-backend-go/internal/models"
)

// DeviceClaims identifies a paired mattress cover
type DeviceClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// DeviceService pairs mattress covers and verifies their session tokens
type DeviceService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewDeviceService creates a device service signing with secret
func NewDeviceService(secret string, ttl time.Duration) *DeviceService {
	return &DeviceService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Pair normalizes the serial number and opens a session for it
func (s *DeviceService) Pair(serial string) (*models.DeviceSession, error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))
	if serial == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidSerial)
	}

	now := s.now()
	expires := now.Add(s.ttl)
	sessionID := uuid.NewString()

	claims := DeviceClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   serial,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &models.DeviceSession{
		SessionID:       sessionID,
		SerialNumber:    serial,
		Token:           token,
		ExpiresAt:       expires.Unix(),
		ConnectionSteps: connectionSteps(serial),
	}, nil
}

// Verify parses a session token and returns its claims
func (s *DeviceService) Verify(token string) (*DeviceClaims, error) {
	claims := &DeviceClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

func connectionSteps(serial string) []models.ConnectionStep {
	return []models.ConnectionStep{
		{Message: "Initializing connection...", Progress: 0.1},
		{Message: "Scanning for device...", Progress: 0.25},
		{Message: "Device found: " + serial, Progress: 0.4},
		{Message: "Establishing secure connection...", Progress: 0.6},
		{Message: "Retrieving mattress cover data...", Progress: 0.8},
		{Message: "Syncing pressure sensors...", Progress: 0.9},
		{Message: "Connection established!", Progress: 1.0},
	}
}
