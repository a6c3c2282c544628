// Package tlsroots builds the root CA pool the CLI trusts for HTTPS.
//
// The pool starts from the system roots and can be extended with a PEM
// bundle, for clinics that run the API behind an internal CA.
package tlsroots
