package thicket

import "github.com/rotisserie/eris"

var (
	// ErrResourceUnavailable reports that an encoder could not run this frame
	// because a resource it requires was not present. Only that encoder's
	// contribution is lost.
	ErrResourceUnavailable = eris.New("thicket: required resource unavailable")

	// ErrDuplicateProperty is returned by Register when a Property is already
	// owned by another encoder.
	ErrDuplicateProperty = eris.New("thicket: property already owned by another encoder")

	// ErrDuplicateEncoder is returned by Register for a repeated encoder name.
	ErrDuplicateEncoder = eris.New("thicket: encoder name already registered")

	// ErrRegistrationClosed is returned by Register once the first frame ran.
	ErrRegistrationClosed = eris.New("thicket: registration closed after first frame")

	// ErrArity reports a malformed Property or binding declaration.
	ErrArity = eris.New("thicket: invalid declaration arity")

	// ErrUndeclaredBinding reports a join over a binding the encoder did not
	// declare in Components.
	ErrUndeclaredBinding = eris.New("thicket: binding not declared by encoder")

	// ErrAttachment reports that generated mesh or material data could not be
	// attached to an entity, typically because the entity no longer exists.
	ErrAttachment = eris.New("thicket: attachment failed")

	// ErrInvalidSpriteSheet is returned when sprite sheet data cannot be parsed.
	ErrInvalidSpriteSheet = eris.New("thicket: invalid sprite sheet")
)
