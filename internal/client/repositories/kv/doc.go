// Package kv is the persisted key/value store behind the client session and
// the profile cache. A missing key reads as (nil, nil).
package kv
