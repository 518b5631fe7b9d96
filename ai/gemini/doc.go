// Package gemini implements the ai service interfaces against the Gemini
// API through langchaingo's googleai backend.
//
// All services share one client and are constructed through Provider. The
// package owns prompt construction and defensive response parsing; retry
// policy and batching live with the callers (package enrich and the
// cleanup passes).
package gemini
