// Package loader reads profile and shopping-list records from a file tree.
package loader

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/cassiomolin/lucene-example/internal/domain"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	// ProfilesBaseName is the profiles file name without extension.
	ProfilesBaseName = "profiles"

	// ShoppingListsDir holds one file per shopping list.
	ShoppingListsDir = "shopping-lists"

	// MaxParallelReads bounds concurrent shopping-list file reads.
	MaxParallelReads = 4
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported record file format")

//go:embed data
var bundled embed.FS

// Bundled returns the records shipped with the binary.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Dataset is every record found in a file tree.
type Dataset struct {
	Profiles      []domain.Profile
	ShoppingLists []domain.ShoppingList
}

// Load reads the profiles file and the shopping-list directory from fsys.
// Either may be missing, in which case that collection is empty.
func Load(ctx context.Context, fsys fs.FS) (*Dataset, error) {
	profiles, err := LoadProfiles(fsys)
	if err != nil {
		return nil, err
	}

	lists, err := LoadShoppingLists(ctx, fsys, ShoppingListsDir)
	if err != nil {
		return nil, err
	}

	slog.Info("Records loaded", "profiles", len(profiles), "shopping_lists", len(lists))
	return &Dataset{Profiles: profiles, ShoppingLists: lists}, nil
}

// LoadProfiles reads the first of profiles.json, profiles.yaml,
// profiles.yml or profiles.toml found at the root of fsys.
func LoadProfiles(fsys fs.FS) ([]domain.Profile, error) {
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		name := ProfilesBaseName + ext
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return decodeProfiles(name, data)
	}
	slog.Warn("No profiles file found")
	return nil, nil
}

func decodeProfiles(name string, data []byte) ([]domain.Profile, error) {
	var profiles []domain.Profile
	if path.Ext(name) == ".toml" {
		// TOML has no top-level arrays.
		var doc struct {
			Profiles []domain.Profile `toml:"profiles"`
		}
		if err := Decode(name, data, &doc); err != nil {
			return nil, err
		}
		profiles = doc.Profiles
	} else if err := Decode(name, data, &profiles); err != nil {
		return nil, err
	}

	for i, p := range profiles {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%s: profile %d: id and name are required", name, i)
		}
		if !p.ValidSalary() {
			return nil, fmt.Errorf("%s: profile %s: salary %d is outside [%d, %d]",
				name, p.ID, p.Salary, domain.MinSalary, domain.MaxSalary)
		}
	}
	return profiles, nil
}

// LoadShoppingLists reads every supported file in dir, one list per file.
// Files are read concurrently and returned in file name order.
func LoadShoppingLists(ctx context.Context, fsys fs.FS, dir string) ([]domain.ShoppingList, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("No shopping-list directory found", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	lists := make([]domain.ShoppingList, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxParallelReads)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := readShoppingList(fsys, path.Join(dir, name))
			if err != nil {
				return err
			}
			lists[i] = l
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

func readShoppingList(fsys fs.FS, name string) (domain.ShoppingList, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var l domain.ShoppingList
	if err := Decode(name, data, &l); err != nil {
		return domain.ShoppingList{}, err
	}
	if l.Name == "" {
		return domain.ShoppingList{}, fmt.Errorf("%s: name is required", name)
	}

	if len(l.Items) == 0 {
		l.Items = nil
	}
	l.SourceFileName = path.Base(name)
	if l.ID == "" {
		l.ID = ShoppingListID(l.SourceFileName)
	}
	return l, nil
}

// ShoppingListID derives a stable list ID from its source file name.
func ShoppingListID(fileName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("shopping-list:"+fileName)).String()
}

// Supported reports whether name has a record file extension.
func Supported(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}

// Decode unmarshals data into v using the decoder matching name's extension.
func Decode(name string, data []byte, v any) error {
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".toml":
		err = toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
