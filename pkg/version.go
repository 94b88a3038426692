package ideastash

// Version of the ideastash module.
const Version = "0.1.0"
