package common

// MinPasswordLength is the minimum accepted password length, enforced by the
// orchestrator before any hashing is attempted.
const MinPasswordLength = 8
