package history

import (
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/baijiangliang/year2018/schema"
)

// Snapshot is the cacheable form of a History.
type Snapshot struct {
	Name      string           `json:"name"`
	Path      string           `json:"path"`
	RemoteURL string           `json:"remote_url"`
	Branch    string           `json:"branch"`
	Commits   []*schema.Commit `json:"commits"`
}

// Snapshot captures the window commits of h.
func (h *History) Snapshot() Snapshot {
	return Snapshot{
		Name:      h.Name,
		Path:      h.Path,
		RemoteURL: h.RemoteURL,
		Branch:    h.Branch,
		Commits:   h.Commits,
	}
}

// FromSnapshot rebuilds a History. Commits are expected to be summarized
// already; client is still used to fetch commits outside the window.
func FromSnapshot(client contract.GitClient, snap Snapshot, opts Options) *History {
	h := &History{
		Name:      snap.Name,
		Path:      snap.Path,
		RemoteURL: snap.RemoteURL,
		Branch:    snap.Branch,
		client:    client,
		opts:      opts,
	}
	h.setCommits(snap.Commits)
	return h
}
