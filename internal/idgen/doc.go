// Package idgen generates the two kinds of tokens bin-server hands out:
// short pronounceable paste identifiers (New) and unique 8-character device
// codes (NewDeviceCode). Identifier generation is stateless and never
// fails; device code generation retries against the store's live device set
// until it finds an unused code.
package idgen
