package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/manifest"
	logger "github.com/sirupsen/logrus"
)

// InitialVersion is stamped into every generated manifest.
const InitialVersion = "0.1.0"

// ErrExists is returned when the target directory already exists.
var ErrExists = errors.New("directory already exists")

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Options selects what to generate and where.
type Options struct {
	Template string
	// Name defaults to "<template>-app".
	Name string
	// Parent is the directory the project is created in; defaults to ".".
	Parent string
}

// Result describes a generated project.
type Result struct {
	Template string   `json:"template"`
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Files    []string `json:"files"`
	Version  string   `json:"version"`
}

type templateData struct {
	Name        string
	Package     string
	Module      string
	Template    string
	Description string
	GoVersion   string
	Created     string
}

// Scaffolder writes projects through a FileSystem.
type Scaffolder struct {
	fs  core.FileSystem
	now func() time.Time
}

// New creates a Scaffolder.
func New(fs core.FileSystem) *Scaffolder {
	return &Scaffolder{fs: fs, now: time.Now}
}

// Create renders the template into a new directory and stamps the
// initial version into its manifests.
func (s *Scaffolder) Create(ctx context.Context, opts Options) (*Result, error) {
	tmpl, err := GetTemplate(opts.Template)
	if err != nil {
		return nil, err
	}
	name := opts.Name
	if name == "" {
		name = tmpl.Name + "-app"
	}
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("invalid project name %q: use letters, digits, '.', '_' or '-'", name)
	}
	parent := opts.Parent
	if parent == "" {
		parent = "."
	}
	root := filepath.Join(parent, name)

	if _, err := s.fs.Stat(ctx, root); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, root)
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("check %s: %w", root, err)
	}

	data := templateData{
		Name:        name,
		Package:     packageName(name),
		Module:      "example.com/" + strings.ToLower(name),
		Template:    tmpl.Name,
		Description: tmpl.Description,
		GoVersion:   goVersion(),
		Created:     s.now().Format(time.DateOnly),
	}

	res := &Result{Template: tmpl.Name, Name: name, Path: root, Version: InitialVersion}
	for _, dir := range []string{"templates/common", "templates/" + tmpl.Name} {
		files, err := s.renderTree(ctx, dir, root, data)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, files...)
	}

	if err := s.stampManifests(ctx, root); err != nil {
		return nil, err
	}
	logger.WithFields(logger.Fields{"path": root, "files": len(res.Files)}).Debug("project generated")
	return res, nil
}

func (s *Scaffolder) renderTree(ctx context.Context, srcDir, root string, data templateData) ([]string, error) {
	var written []string
	err := iofs.WalkDir(templateFS, srcDir, func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		t, err := template.New(path.Base(p)).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}
		var buf bytes.Buffer
		if err := t.Execute(&buf, data); err != nil {
			return fmt.Errorf("render template %s: %w", p, err)
		}

		rel := outputPath(strings.TrimPrefix(p, srcDir+"/"), data)
		dest := filepath.Join(root, filepath.FromSlash(rel))
		if err := s.fs.MkdirAll(ctx, filepath.Dir(dest), core.PermDir); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
		}
		if err := s.fs.WriteFile(ctx, dest, buf.Bytes(), core.PermFile); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		written = append(written, rel)
		return nil
	})
	return written, err
}

func (s *Scaffolder) stampManifests(ctx context.Context, root string) error {
	targets := []struct {
		file string
		src  manifest.Source
	}{
		{manifest.FileName, manifest.Source{Format: manifest.FormatTOML, Field: "project.version"}},
		{"meta.json", manifest.Source{Format: manifest.FormatJSON, Field: "version"}},
	}
	for _, t := range targets {
		if err := manifest.StampFile(ctx, s.fs, filepath.Join(root, t.file), t.src, InitialVersion); err != nil {
			return err
		}
	}
	return nil
}

// outputPath maps a template path to the generated file path.
func outputPath(rel string, data templateData) string {
	rel = strings.TrimSuffix(rel, ".tmpl")
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "NAME", data.Name)
		part = strings.ReplaceAll(part, "PACKAGE", data.Package)
		if strings.HasPrefix(part, "_") {
			part = "." + part[1:]
		}
		parts[i] = part
	}
	return strings.Join(parts, "/")
}

// packageName derives a Go package identifier from a project name.
func packageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	pkg := b.String()
	if pkg == "" || (pkg[0] >= '0' && pkg[0] <= '9') {
		pkg = "pkg" + pkg
	}
	return pkg
}

func goVersion() string {
	v := strings.TrimPrefix(runtime.Version(), "go")
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 || !strings.HasPrefix(runtime.Version(), "go1") {
		return "1.25"
	}
	return parts[0] + "." + parts[1]
}
