/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
internal error handling and log output.
*/
package errs

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the error message.
var errorMap = map[int]CustomError{
	// 1xxx: Wire Protocol Errors
	ErrEnvelopeDecode: {Code: ErrEnvelopeDecode, Message: "Malformed or unrecognized envelope."},
	ErrEnvelopeEncode: {Code: ErrEnvelopeEncode, Message: "Envelope could not be serialized."},
	ErrPayloadDecode:  {Code: ErrPayloadDecode, Message: "Malformed or missing chat payload."},

	// 2xxx: Transport Errors
	ErrSendFailed: {Code: ErrSendFailed, Message: "Outbound frame could not be delivered: %s"},
	ErrConnClosed: {Code: ErrConnClosed, Message: "Connection is closed."},

	// 3xxx: Configuration Errors
	ErrConfigInvalid: {Code: ErrConfigInvalid, Message: "Invalid configuration: %s"},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong."},
}
