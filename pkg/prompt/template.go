package prompt

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"text/template"
)

// Template wraps a text/template loaded from disk or from an fs.FS.
type Template struct {
	path  string
	fsys  fs.FS
	funcs template.FuncMap

	tmpl *template.Template
	hash string
}

// NewTemplate parses the template file at path.
func NewTemplate(path string, funcs template.FuncMap) (*Template, error) {
	return newTemplate(nil, path, funcs)
}

// NewTemplateFS parses name from fsys, typically an embed.FS carrying the
// built-in prompts.
func NewTemplateFS(fsys fs.FS, name string, funcs template.FuncMap) (*Template, error) {
	if fsys == nil {
		return nil, fmt.Errorf("prompt template %q: nil filesystem", name)
	}
	return newTemplate(fsys, name, funcs)
}

func newTemplate(fsys fs.FS, path string, funcs template.FuncMap) (*Template, error) {
	if path == "" {
		return nil, fmt.Errorf("prompt template path is empty")
	}
	t := &Template{
		path:  path,
		fsys:  fsys,
		funcs: funcs,
	}
	if err := t.parse(); err != nil {
		return nil, err
	}
	return t, nil
}

// Render executes the template with the provided data and returns the rendered string.
func (t *Template) Render(data any) (string, error) {
	if t.tmpl == nil {
		return "", fmt.Errorf("prompt template %q not parsed", t.path)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.path, err)
	}
	return buf.String(), nil
}

func (t *Template) parse() error {
	data, err := t.read()
	if err != nil {
		return fmt.Errorf("read prompt template %q: %w", t.path, err)
	}
	t.hash = computeDigest(data)

	tmpl := template.New(t.name()).Option("missingkey=error")
	if len(t.funcs) > 0 {
		tmpl = tmpl.Funcs(t.funcs)
	}
	if _, err := tmpl.Parse(string(data)); err != nil {
		return fmt.Errorf("parse prompt template %q: %w", t.path, err)
	}
	t.tmpl = tmpl
	return nil
}

func (t *Template) read() ([]byte, error) {
	if t.fsys != nil {
		return fs.ReadFile(t.fsys, t.path)
	}
	return os.ReadFile(t.path)
}

func (t *Template) name() string {
	if t.fsys != nil {
		return path.Base(t.path)
	}
	return filepath.Base(t.path)
}

// Digest returns the sha256 hash of the template content.
func (t *Template) Digest() string {
	return t.hash
}

// Path returns where the template was loaded from.
func (t *Template) Path() string {
	return t.path
}
