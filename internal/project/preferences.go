package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"go.uber.org/zap"

	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/gridlog"
)

// Preferences is the small per-user state that outlives any one project:
// currently just the recent-projects FIFO (spec §4.G, §6).
type Preferences struct {
	RecentProjects []string `json:"recently_opened"`
}

// preferencesPath returns "<cwd>/.flowgrid/Preferences.flp", per spec
// §4.G/§6 ("a small .flp JSON in $CWD/.flowgrid/"): preferences are
// per-working-directory, not per-user-home.
func preferencesPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("project: locate working directory: %w", err)
	}
	return filepath.Join(cwd, ".flowgrid", "Preferences.flp"), nil
}

// LoadPreferences reads the on-disk preferences file, returning an empty
// Preferences (not an error) if none exists yet.
func LoadPreferences() (Preferences, error) {
	path, err := preferencesPath()
	if err != nil {
		return Preferences{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preferences{}, nil
		}
		return Preferences{}, fmt.Errorf("project: read preferences: %w", err)
	}
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	return p, nil
}

func savePreferences(p Preferences) error {
	path, err := preferencesPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("project: create preferences directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("project: write preferences: %w", err)
	}
	return nil
}

// addRecent pushes filePath to the front of the recent-projects list,
// deduplicating and trimming to cfg.MaxRecentProjects. The update to the
// on-disk document is expressed as an RFC 7396 JSON merge patch applied
// via evanphx/json-patch/v5 rather than hand-rolled field assignment, so
// a Preferences file grown with more fields in a future version still
// merges correctly instead of being clobbered wholesale.
func addRecent(cfg config.Config, filePath string) error {
	prefs, err := LoadPreferences()
	if err != nil {
		return err
	}
	updated := make([]string, 0, len(prefs.RecentProjects)+1)
	updated = append(updated, filePath)
	for _, p := range prefs.RecentProjects {
		if p == filePath {
			continue
		}
		updated = append(updated, p)
	}
	if cfg.MaxRecentProjects > 0 && len(updated) > cfg.MaxRecentProjects {
		updated = updated[:cfg.MaxRecentProjects]
	}

	existing, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	mergeDoc, err := json.Marshal(struct {
		RecentProjects []string `json:"recently_opened"`
	}{updated})
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(existing, mergeDoc)
	if err != nil {
		return fmt.Errorf("project: merge preferences: %w", err)
	}
	var out Preferences
	if err := json.Unmarshal(merged, &out); err != nil {
		return fmt.Errorf("project: unmarshal merged preferences: %w", err)
	}
	return savePreferences(out)
}

// recordRecent calls addRecent and logs (rather than propagates) any
// failure: a preferences write failing must never fail the Open/Save it
// was recording.
func recordRecent(cfg config.Config, filePath string) {
	if err := addRecent(cfg, filePath); err != nil {
		gridlog.Named("project").Warn("failed to record recent project", zap.String("path", filePath), zap.Error(err))
	}
}
