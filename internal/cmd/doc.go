// Package cmd provides helpers for executing external commands with proper error handling.
//
// All helpers capture stderr and fold it into the returned error, so a failing
// git invocation surfaces the message git printed rather than "exit status 128".
// Every execution is reported to the context logger, which prints the command
// line and its duration in verbose mode.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "branch", "-D", name); err != nil {
//	    return fmt.Errorf("delete %s: %w", name, err)
//	}
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "branch", "--merged", "main")
//
// [Pipe] is used for the fuzzy selector: it feeds a menu on stdin, leaves the
// terminal to the child process and reports the exit code instead of failing.
//
// # Design Notes
//
// gpick shells out to git for everything that mutates state or touches the
// network. This keeps user configuration (SSH keys, credential helpers,
// hooks) in effect.
package cmd
