// Package mock provides test doubles for the ai service interfaces.
//
// Each mock exposes a function field for behavior injection and a
// CallCount method for assertions. With no function set, the mocks
// return deterministic canned data so higher-level tests can run
// without configuring every collaborator.
package mock
