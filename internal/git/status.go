package git

import (
	"bytes"
	"context"
	"fmt"
)

// FileStatus is one entry of `git status --porcelain`.
type FileStatus struct {
	Path     string
	OrigPath string // source path of a rename or copy
	Index    byte   // X column
	Worktree byte   // Y column
}

// Staged reports whether the entry has changes in the index.
func (f FileStatus) Staged() bool {
	return f.Index != ' ' && f.Index != '?' && f.Index != '!'
}

// Untracked reports whether git does not know the file yet.
func (f FileStatus) Untracked() bool {
	return f.Index == '?'
}

// Unstaged reports whether the work tree differs from the index.
func (f FileStatus) Unstaged() bool {
	return f.Worktree != ' ' && !f.Untracked()
}

// Code returns the two-letter status code, e.g. "M " or "??".
func (f FileStatus) Code() string {
	return string([]byte{f.Index, f.Worktree})
}

// Status lists changed and untracked files.
func (r *Repo) Status(ctx context.Context) ([]FileStatus, error) {
	out, err := outputGit(ctx, r.dir, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return parseStatus(out)
}

// parseStatus parses NUL-terminated porcelain v1 output. Renames and copies
// carry the source path as an extra NUL-terminated field.
func parseStatus(out []byte) ([]FileStatus, error) {
	var files []FileStatus
	fields := bytes.Split(out, []byte{0})
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if len(f) == 0 {
			continue
		}
		if len(f) < 4 || f[2] != ' ' {
			return nil, fmt.Errorf("malformed status entry %q", f)
		}
		fs := FileStatus{Index: f[0], Worktree: f[1], Path: string(f[3:])}
		if fs.Index == 'R' || fs.Index == 'C' {
			i++
			if i >= len(fields) {
				return nil, fmt.Errorf("status entry %q is missing its source path", f)
			}
			fs.OrigPath = string(fields[i])
		}
		files = append(files, fs)
	}
	return files, nil
}
