package errors

import "errors"

var (
	ErrMissingAPICredentials = errors.New("api_id and api_hash are required")
	ErrMissingPhoneNumber    = errors.New("phone_number is required")
	ErrInvalidThrottleRange  = errors.New("throttle_min_minutes must be positive and not exceed throttle_max_minutes")
	ErrChannelNotFound       = errors.New("channel not found")
	ErrNotAChannel           = errors.New("reference does not point to a channel")
	ErrJobInFlight           = errors.New("a download job is already running")
	ErrQueueFull             = errors.New("download queue is full")
)
