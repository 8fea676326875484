package gripcontrol

import "errors"

var (
	// ErrSigMalformed is returned when a Grip-Sig token cannot be parsed.
	ErrSigMalformed = errors.New("gripcontrol: malformed signature token")

	// ErrSigInvalid is returned when a Grip-Sig token's signature does not
	// verify against the key.
	ErrSigInvalid = errors.New("gripcontrol: invalid signature")

	// ErrSigExpired is returned when a Grip-Sig token has expired.
	ErrSigExpired = errors.New("gripcontrol: signature token expired")

	// ErrSigUnexpectedMethod is returned when a Grip-Sig token is not signed
	// with an HMAC method.
	ErrSigUnexpectedMethod = errors.New("gripcontrol: unexpected signing method")

	// ErrInvalidGripURI is returned by ParseGripURI for unusable URIs.
	ErrInvalidGripURI = errors.New("gripcontrol: invalid GRIP URI")

	// ErrInvalidInstruction is returned by ValidateInstruction when a document
	// is not a valid hold instruction.
	ErrInvalidInstruction = errors.New("gripcontrol: invalid hold instruction")
)
