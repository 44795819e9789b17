// Package branch holds the branch-cleanup core: the records produced by the
// repository queries, the classifier that sorts them into categories, the
// menu rows shown by the picker and the executor that deletes what the user
// confirmed.
//
// # Categories
//
// Local cleanup uses three categories, in this display order:
//
//   - Merged: the branch had an upstream configured but the remote branch is
//     gone (typically deleted after its pull request was merged)
//   - Stale: the last commit is older than the threshold, or its time is unknown
//   - Recent: everything else
//
// The remote sweep uses only Stale and Recent.
//
// Classification is a pure function of the records and the threshold. Within
// a category, records are ordered by last commit time, newest first; ties keep
// the input order.
//
// # Execution
//
// [Executor] never deletes the checked-out branch in place. It switches to the
// base branch first and aborts the whole batch if that fails. Individual
// deletions are independent: one failure does not stop the rest.
package branch
