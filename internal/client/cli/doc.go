// Package cli implements the userdir command line: an interactive REPL over
// the user collection store, one-shot list and show commands, and the
// commands that serve or call the gRPC bridge.
//
// REPL commands
//
//	help               show available commands
//	l | list [query]   list users, optionally filtered
//	search <query>     same as list with a mandatory query
//	show <id>          show one user
//	add                create a local user
//	edit <id>          edit a user in place
//	delete <id>        remove a user
//	refresh | retry    reload the collection from the API
//	status             show loading state, last error and fetch time
//	exit | quit        leave the program
package cli
