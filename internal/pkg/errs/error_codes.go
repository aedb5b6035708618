/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific protocol or transport
errors both internally within the client and in log output.
*/
package errs

// 1xxx: Wire Protocol Errors
const (
	// ErrEnvelopeDecode indicates that an inbound frame was not a well-formed
	// envelope, or carried an unrecognized messageType tag.
	ErrEnvelopeDecode = 1001

	// ErrEnvelopeEncode indicates that an outbound envelope could not be serialized.
	ErrEnvelopeEncode = 1002

	// ErrPayloadDecode indicates that a message envelope's nested chat payload
	// was absent or malformed.
	ErrPayloadDecode = 1003
)

// 2xxx: Transport Errors
const (
	// ErrSendFailed indicates that the transport rejected or could not deliver an outbound frame.
	ErrSendFailed = 2001

	// ErrConnClosed indicates that an operation was attempted on a closed connection.
	ErrConnClosed = 2002
)

// 3xxx: Configuration Errors
const (
	// ErrConfigInvalid indicates that a configuration value failed validation.
	ErrConfigInvalid = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)
