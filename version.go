package minilua

// Version of the tokenizer, reported by the CLI banner.
const Version = "0.1.0"
