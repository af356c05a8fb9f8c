package main

// Exit codes shared by all pa commands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (missing workspace, invalid paths)
	ExitNotFound     = 3 // Project or paper not found
	ExitTooFewPapers = 4 // Not enough embeddable papers to cluster
)
