// Package roles provides the interviewable role catalog. A built-in set of
// roles is always available; a directory of YAML files can extend or
// override it, and the catalog hot-reloads when files in that directory
// change.
package roles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Role describes one interviewable position.
type Role struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Catalog is the concurrency-safe role registry.
type Catalog struct {
	mu    sync.RWMutex
	roles []Role
	dir   string
	log   *logrus.Entry
}

// NewCatalog creates a catalog seeded with the built-in roles and, if dir is
// non-empty, overlaid with any YAML role files found there.
func NewCatalog(dir string) (*Catalog, error) {
	c := &Catalog{
		dir: dir,
		log: logrus.WithField("component", "roles"),
	}
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Roles returns a copy of the current catalog.
func (c *Catalog) Roles() []Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Load rebuilds the catalog from the built-in roles plus the overlay
// directory. An overlay role with a built-in title replaces the built-in.
func (c *Catalog) Load() error {
	roles := append([]Role(nil), defaultRoles...)

	if c.dir != "" {
		overlay, err := loadDir(c.dir)
		if err != nil {
			return err
		}
		for _, r := range overlay {
			roles = merge(roles, r)
		}
	}

	c.mu.Lock()
	c.roles = roles
	c.mu.Unlock()
	return nil
}

// Watch reloads the catalog whenever the overlay directory changes. Blocks
// until ctx is cancelled; returns immediately if no directory is configured.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return fmt.Errorf("watching %s: %w", c.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := c.Load(); err != nil {
				c.log.WithError(err).Warn("role catalog reload failed, keeping previous catalog")
			} else {
				c.log.WithField("file", event.Name).Info("role catalog reloaded")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.WithError(err).Warn("role watcher error")
		}
	}
}

func loadDir(dir string) ([]Role, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading roles directory: %w", err)
	}

	var roles []Role
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		role, err := parseRoleFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func parseRoleFile(path string) (*Role, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var role Role
	if err := yaml.Unmarshal(data, &role); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if role.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if role.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	return &role, nil
}

func merge(roles []Role, r Role) []Role {
	for i, existing := range roles {
		if existing.Title == r.Title {
			roles[i] = r
			return roles
		}
	}
	return append(roles, r)
}

var defaultRoles = []Role{
	{
		Title:       "Software Engineer",
		Description: "We're seeking a brilliant Software Engineer to join our innovative team. You'll be crafting cutting-edge applications, solving complex technical challenges, and contributing to products that impact millions of users worldwide. Experience with modern frameworks, cloud technologies, and a passion for clean code is essential.",
		Icon:        "💻",
		Color:       "#8B5CF6",
	},
	{
		Title:       "Data Scientist",
		Description: "Join our data science team to unlock insights from massive datasets and build machine learning models that drive business decisions. You'll work with cutting-edge AI technologies, develop predictive models, and communicate complex findings to stakeholders.",
		Icon:        "📊",
		Color:       "#10B981",
	},
	{
		Title:       "Product Manager",
		Description: "Lead product strategy and execution for innovative digital products. You'll work with cross-functional teams, conduct user research, define product roadmaps, and ensure successful product launches that delight users and drive business growth.",
		Icon:        "🎯",
		Color:       "#F59E0B",
	},
	{
		Title:       "UX Designer",
		Description: "Create exceptional user experiences through thoughtful design, user research, and prototyping. You'll collaborate with product and engineering teams to design intuitive interfaces that solve real user problems and drive engagement.",
		Icon:        "🎨",
		Color:       "#F87171",
	},
	{
		Title:       "DevOps Engineer",
		Description: "Build and maintain robust infrastructure and deployment pipelines. You'll work with cloud technologies, implement CI/CD processes, ensure system reliability, and optimize performance for scalable applications.",
		Icon:        "⚙️",
		Color:       "#14B8A6",
	},
}
