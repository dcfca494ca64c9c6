// Package auth implements the authentication core: password hashing, bearer
// token issuance and verification, account registration and login, and the
// role gate used to authorize requests.
//
// Tokens are HS256 JWTs carrying the subject, email and role of the principal
// at issuance. The role in a token is a snapshot; authorization decisions use
// the live principal resolved from the store.
package auth
