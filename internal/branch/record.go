package branch

// Scope selects local or remote-tracking branches.
type Scope int

const (
	// Local branches under refs/heads.
	Local Scope = iota
	// Remote branches under refs/remotes.
	Remote
)

func (s Scope) String() string {
	if s == Remote {
		return "remote"
	}
	return "local"
}

// Record is one branch as seen by the repository queries.
type Record struct {
	Name               string // branch name without remote prefix
	Remote             string // remote name for remote records, empty for local
	LastCommitEpoch    int64  // 0 if unknown
	LastCommitRelative string
	AuthorName         string
	AuthorEmail        string

	HasRemoteCounterpart  bool // the configured upstream ref still exists
	HadConfiguredUpstream bool // branch.<name>.merge is set
	IsCurrent             bool
}

// Ref returns the name used on the command line: "origin/feature" for
// remote records, the plain name for local ones.
func (r Record) Ref() string {
	if r.Remote != "" {
		return r.Remote + "/" + r.Name
	}
	return r.Name
}

// Entry is the structured output record. Field names and types are consumed
// by scripts and must not change.
type Entry struct {
	LastChangeTimestamp int64  `json:"last_change_timestamp"`
	AuthorEmail         string `json:"author_email"`
	AuthorName          string `json:"author_name"`
	Name                string `json:"name"`
	LastChangeRelative  string `json:"last_change_relative"`
}

// Entries converts records to structured output entries.
// Never returns nil, so an empty list encodes as [] rather than null.
func Entries(records []Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			LastChangeTimestamp: r.LastCommitEpoch,
			AuthorEmail:         r.AuthorEmail,
			AuthorName:          r.AuthorName,
			Name:                r.Ref(),
			LastChangeRelative:  r.LastCommitRelative,
		})
	}
	return entries
}
