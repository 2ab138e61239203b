// Package utils contains small conversion helpers shared across packages.
//
// It covers loosely typed values coming from query strings or configuration
// (ToInt, ToBool) and the canonical number parsing that decides whether a
// filename stem is already part of the numbered sequence (ParseNumber).
package utils
