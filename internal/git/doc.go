// Package git is the repository query adapter.
//
// A [Repo] is opened once per invocation and passed explicitly to every
// caller. Read-only queries (refs, upstream config, commit metadata) go
// through go-git so they never spawn processes or touch the network.
// Mutations and fetches shell out to the git CLI via [internal/cmd] so that
// the user's configuration applies (hooks, credential helpers, SSH keys).
//
// # Queries
//
//   - [Repo.ListBranches]: local or remote-tracking branches as [branch.Record]
//   - [Repo.MergedInto]: local branches reachable from a base branch
//   - [Repo.BaseBranch], [Repo.CurrentBranch], [Repo.RefExists]
//   - [Repo.Status], [Repo.Stashes], [Repo.BranchLog], [Repo.FileDiff]
//
// # Mutations
//
//   - [Repo.SwitchTo], [Repo.DeleteLocalBranch], [Repo.DeleteRemoteBranch]
//   - [Repo.CreateBranch], [Repo.TrackRemote], [Repo.PushWithTracking]
//   - [Repo.Stage], [Repo.Unstage], [Repo.Commit]
//   - [Repo.StashPush], [Repo.StashApply], [Repo.StashPop], [Repo.StashDrop]
//
// [Repo.FetchAndPrune] is the only operation that talks to a remote. Its
// failure is reported as [ErrSyncFailed] so callers can warn and continue.
package git
