package erniechat

import (
	"github.com/tiktoken-go/tokenizer"
)

// Tokenizer is the shared token codec.  ERNIE does not publish a public
// tokenizer, so cl100k_base is used as an estimate for budget checks.
var Tokenizer tokenizer.Codec

// InitTokenizer initializes the tokenizer.
// This function needs to be idempotent because it might be called
// multiple times during the lifetime of a process.
func InitTokenizer() (err error) {
	if Tokenizer != nil {
		return nil
	}
	Tokenizer, err = tokenizer.Get(tokenizer.Cl100kBase)
	return
}

// TokenCount returns the approximate number of tokens in a string.
func TokenCount(text string) (count int, err error) {
	err = InitTokenizer()
	if err != nil {
		return
	}
	_, tokens, err := Tokenizer.Encode(text)
	if err != nil {
		return
	}
	count = len(tokens)
	return
}
