// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

# Admin Keys

Admin keys authorize election lifecycle operations (publish, close). They
are HMAC-SHA256 over the election ID, so they can be re-derived and
verified without storing them:

	key := auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(electionID, key, cfg.AdminKeySalt)

# Voter Tokens

Voter tokens are 192-bit random values issued at registration. A token is
the opaque caller identity handed to the tally core; the server resolves
it from the X-Voter-Token header, so a request body can never choose who
is voting. ValidateVoterToken cheaply rejects malformed values.

# Share Slugs

Share slugs are short base62 strings derived from the election ID with a
separate salt, used in public URLs.

# IP Hashing

HashIP produces a salted, truncated hash of a client IP for abuse
deduplication without storing the address itself.
*/
package auth
