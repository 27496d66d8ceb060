// Package jwt decodes compact JSON Web Tokens for inspection.
//
// Tokens are split into their header, payload and signature segments and
// the first two are decoded as base64url JSON. Signatures are returned
// verbatim and never verified.
package jwt
