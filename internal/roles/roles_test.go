package roles

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRoleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewCatalog_Defaults(t *testing.T) {
	c, err := NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	roles := c.Roles()
	if len(roles) != 5 {
		t.Fatalf("got %d built-in roles, want 5", len(roles))
	}

	titles := map[string]bool{}
	for _, r := range roles {
		titles[r.Title] = true
		if r.Description == "" {
			t.Errorf("role %q has no description", r.Title)
		}
	}
	for _, want := range []string{"Software Engineer", "Data Scientist", "Product Manager", "UX Designer", "DevOps Engineer"} {
		if !titles[want] {
			t.Errorf("missing built-in role %q", want)
		}
	}
}

func TestNewCatalog_MissingDirIsNotAnError(t *testing.T) {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if len(c.Roles()) != 5 {
		t.Errorf("got %d roles, want the built-ins only", len(c.Roles()))
	}
}

func TestLoad_OverlayAddsRole(t *testing.T) {
	dir := t.TempDir()
	writeRoleFile(t, dir, "sre.yaml", "title: Site Reliability Engineer\ndescription: Keeps the lights on.\nicon: \"🚨\"\n")

	c, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	roles := c.Roles()
	if len(roles) != 6 {
		t.Fatalf("got %d roles, want built-ins plus overlay", len(roles))
	}
	last := roles[len(roles)-1]
	if last.Title != "Site Reliability Engineer" || last.Icon != "🚨" {
		t.Errorf("overlay role = %+v", last)
	}
}

func TestLoad_OverlayOverridesByTitle(t *testing.T) {
	dir := t.TempDir()
	writeRoleFile(t, dir, "se.yml", "title: Software Engineer\ndescription: Our own take on the role.\n")

	c, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	roles := c.Roles()
	if len(roles) != 5 {
		t.Fatalf("got %d roles, override should not add a role", len(roles))
	}
	for _, r := range roles {
		if r.Title == "Software Engineer" && r.Description != "Our own take on the role." {
			t.Errorf("override not applied: %+v", r)
		}
	}
}

func TestLoad_IgnoresNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeRoleFile(t, dir, "README.md", "not a role")

	c, err := NewCatalog(dir)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if len(c.Roles()) != 5 {
		t.Errorf("got %d roles, want the built-ins only", len(c.Roles()))
	}
}

func TestLoad_InvalidRoleFile(t *testing.T) {
	cases := map[string]string{
		"missing-title.yaml":       "description: No title here.\n",
		"missing-description.yaml": "title: Ghost Role\n",
		"broken.yaml":              "title: [unclosed\n",
	}
	for name, content := range cases {
		dir := t.TempDir()
		writeRoleFile(t, dir, name, content)

		if _, err := NewCatalog(dir); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestRoles_ReturnsCopy(t *testing.T) {
	c, err := NewCatalog("")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	roles := c.Roles()
	roles[0].Title = "mutated"
	if c.Roles()[0].Title == "mutated" {
		t.Error("Roles must return a copy, not the backing slice")
	}
}
