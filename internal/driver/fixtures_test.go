package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// fixtureIndex mirrors testdata/manifest.yaml: a small table of fixture
// projects under testdata/fixtures, each with its own shiro.toml, that
// this test drives end to end through Build.
type fixtureIndex struct {
	Fixtures []struct {
		Name            string `yaml:"name"`
		Root            string `yaml:"root"`
		Description     string `yaml:"description"`
		ExpectErrors    bool   `yaml:"expectErrors"`
		MessageContains string `yaml:"messageContains"`
	} `yaml:"fixtures"`
}

func loadFixtureIndex(t *testing.T) fixtureIndex {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "manifest.yaml"))
	if err != nil {
		t.Fatalf("reading fixture index: %v", err)
	}
	var idx fixtureIndex
	if err := yaml.Unmarshal(data, &idx); err != nil {
		t.Fatalf("parsing fixture index: %v", err)
	}
	return idx
}

// TestFixtureProjects runs every project indexed in testdata/manifest.yaml
// through the full build pipeline and snapshots its diagnostic report.
func TestFixtureProjects(t *testing.T) {
	idx := loadFixtureIndex(t)

	for _, fx := range idx.Fixtures {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			root := filepath.Join("..", "..", "testdata", fx.Root)
			result, buildErr := Build(root, Options{})
			if result == nil {
				t.Fatalf("%s: Build returned no result: %v", fx.Name, buildErr)
			}

			gotErrors := buildErr != nil
			if gotErrors != fx.ExpectErrors {
				t.Fatalf("%s: got errors=%v, want errors=%v (%s)\n%s",
					fx.Name, gotErrors, fx.ExpectErrors, fx.Description, result.Diagnostics.Report())
			}

			// Encode the bag the same way `shiroc check --json` does and
			// query it with gjson, so a fixture can assert on a specific
			// diagnostic's message without depending on the bag's Go
			// field names or the text report's exact formatting. Some
			// failures (a cyclic-dependency error, say) are returned
			// directly from Build rather than recorded in the bag, so
			// this only applies to fixtures that name a message to find.
			if fx.MessageContains != "" {
				doc, err := result.Diagnostics.ToJSON()
				if err != nil {
					t.Fatalf("%s: encoding diagnostics as JSON: %v", fx.Name, err)
				}
				messages := gjson.Get(doc, "#.message").Array()
				found := false
				for _, m := range messages {
					if strings.Contains(m.String(), fx.MessageContains) {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("%s: no diagnostic message contains %q, got %s", fx.Name, fx.MessageContains, doc)
				}
			}

			snaps.MatchSnapshot(t, fx.Name+"_diagnostics", result.Diagnostics.Report())
		})
	}
}
