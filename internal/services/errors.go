package services

import (
	"errors"

	"luckywheel/internal/wheel"
)

var (
	// ErrEmptyName indicates a participant or prize name that is blank after trimming
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidQuantity indicates a prize quantity that is not positive
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")

	// ErrInvalidColor indicates a prize color that is not a #RGB or #RRGGBB hex value
	ErrInvalidColor = errors.New("color must be a hex value like #FF6B6B")

	// ErrDuplicateID indicates an explicit id that is already in use
	ErrDuplicateID = errors.New("id already exists")

	// ErrParticipantNotFound indicates the participant is not in the roster
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrPrizeNotFound indicates the prize is not in the pool
	ErrPrizeNotFound = errors.New("prize not found")

	// ErrRecordNotFound indicates the winner record is not in the history
	ErrRecordNotFound = errors.New("winner record not found")

	// ErrSpinInProgress indicates the wheel is spinning and the request must wait
	ErrSpinInProgress = errors.New("a spin is in progress")

	// ErrNothingToConfirm indicates there is no revealed draw awaiting the operator
	ErrNothingToConfirm = errors.New("no revealed draw to settle")

	// ErrNoSegments indicates every prize unit has been awarded
	ErrNoSegments = wheel.ErrNoSegments

	// ErrRotationMismatch indicates a computed rotation that does not stop on the drawn segment
	ErrRotationMismatch = errors.New("rotation does not match the draw")

	// ErrInvalidSettings indicates wheel settings that cannot drive a spin
	ErrInvalidSettings = errors.New("invalid wheel settings")
)
