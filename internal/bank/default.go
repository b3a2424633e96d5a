package bank

import _ "embed"

//go:embed defaults/bank.yaml
var defaultBank []byte

// Default returns the embedded hospital-themed bank.
func Default() *Bank {
	b, err := Parse(defaultBank)
	if err != nil {
		// The embedded bank is validated by tests; a parse failure here is
		// a build defect.
		panic("bank: embedded default bank is invalid: " + err.Error())
	}
	return b
}
