package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the persisted posting list. A missing file is a normal empty
// store. A file that exists but does not parse is a hard error: the store is
// the single source of truth for deduplication and a silently truncated one
// would re-admit every duplicate on the next run.
func Load(path string) ([]*Posting, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []*Posting{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading job store %q: %w", path, err)
	}

	var postings []*Posting
	if err := json.Unmarshal(data, &postings); err != nil {
		return nil, fmt.Errorf("job store %q is corrupted: %w", path, err)
	}

	return postings, nil
}

// Save serializes the full canonical list, replacing prior content. The
// write goes to a temp file in the same directory first and is swapped in
// with a rename, so a crash mid-write leaves the previous store intact.
func Save(postings []*Posting, path string) error {
	if postings == nil {
		postings = []*Posting{}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".jobs_*.json")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(postings); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding job store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing job store %q: %w", path, err)
	}

	return nil
}

// Merge returns existing followed by every incoming posting whose source
// link is not already present. The link set is built once, so the merge is
// O(n+m). On a link collision the existing record wins; records are never
// merged field by field.
func Merge(existing, incoming []*Posting) []*Posting {
	seen := make(map[string]struct{}, len(existing))
	for _, posting := range existing {
		seen[posting.SourceLink] = struct{}{}
	}

	merged := make([]*Posting, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)

	for _, posting := range incoming {
		if _, ok := seen[posting.SourceLink]; ok {
			continue
		}
		seen[posting.SourceLink] = struct{}{}
		merged = append(merged, posting)
	}

	return merged
}
