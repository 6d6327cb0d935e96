// Package email defines the outbound mail contract used by the
// verification flow and two transports behind it: a Postmark client for
// production and a file-backed DevSender for local development.
//
// The core treats the transport as a black box that can fail. A send
// failure after a challenge has been stored is surfaced to the caller
// (who offers a resend) and never retried automatically, because a blind
// retry would race with resends and duplicate deliveries.
//
// VerificationCodeEmail builds the one-time-code message itself, so
// services depend only on the EmailSender interface and never on
// template details.
package email
