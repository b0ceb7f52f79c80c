// Package remotecmd renders the shell commands issued on the deployment host. Every
// interpolated path is single-quoted, so names and roots cannot inject shell syntax.
package remotecmd

import (
	"fmt"
	"path"
	"strings"

	"wvdeploy/internal/templates"

	"github.com/aymerick/raymond"
)

// Quote wraps s in single quotes for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ValidateName rejects names that would not select a single child of the root.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidName, name)
	case strings.ContainsAny(name, "\x00\n\r"):
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
	}
	return nil
}

func ValidateRoot(root string) error {
	if root == "" {
		return fmt.Errorf("%w: root cannot be empty", ErrInvalidRoot)
	}
	if strings.ContainsAny(root, "\x00\n\r") {
		return fmt.Errorf("%w: %q contains control characters", ErrInvalidRoot, root)
	}
	// a quoted ~ is never expanded, by the shell or by sftp
	if strings.HasPrefix(root, "~") {
		return fmt.Errorf("%w: %q must not start with ~, use an absolute path or one relative to the login directory", ErrInvalidRoot, root)
	}
	return nil
}

// Builder produces the commands for one deployment target.
type Builder struct {
	TargetDir   string
	ArchiveName string
	ScaffoldDir string
	WebRootDir  string

	prepare  *raymond.Template
	extract  *raymond.Template
	relocate *raymond.Template
}

func NewBuilder(root string, name string, archiveName string, scaffoldDir string, webRootDir string) (*Builder, error) {
	if err := ValidateRoot(root); err != nil {
		return nil, err
	}

	if err := ValidateName(name); err != nil {
		return nil, err
	}

	b := &Builder{
		TargetDir:   path.Join(root, name),
		ArchiveName: archiveName,
		ScaffoldDir: scaffoldDir,
		WebRootDir:  webRootDir,
	}

	var err error

	if b.prepare, err = parseTemplate(templates.PrepareScriptTemplatePath); err != nil {
		return nil, err
	}

	if b.extract, err = parseTemplate(templates.ExtractScriptTemplatePath); err != nil {
		return nil, err
	}

	if b.relocate, err = parseTemplate(templates.RelocateScriptTemplatePath); err != nil {
		return nil, err
	}

	return b, nil
}

func parseTemplate(templatePath string) (*raymond.Template, error) {
	source, err := templates.Scripts.ReadFile(templatePath)

	if err != nil {
		return nil, err
	}

	return raymond.Parse(string(source))
}

// RemoteArchivePath is where the artifact is uploaded on the host.
func (b *Builder) RemoteArchivePath() string {
	return path.Join(b.TargetDir, b.ArchiveName)
}

func (b *Builder) params() map[string]string {
	return map[string]string{
		"targetDir":   Quote(b.TargetDir),
		"archivePath": Quote(b.RemoteArchivePath()),
		"archiveName": Quote(b.ArchiveName),
		"scaffoldDir": Quote(b.ScaffoldDir),
		"webRoot":     Quote(path.Join(b.ScaffoldDir, b.WebRootDir)),
	}
}

func render(tpl *raymond.Template, params map[string]string) (string, error) {
	out, err := tpl.Exec(params)

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// Prepare removes and recreates the target directory, but only when a previous
// archive is present in it.
func (b *Builder) Prepare() (string, error) {
	return render(b.prepare, b.params())
}

func (b *Builder) Extract() (string, error) {
	return render(b.extract, b.params())
}

// Relocate moves the extracted web root (including .htaccess) up into the target
// directory and removes the scaffold.
func (b *Builder) Relocate() (string, error) {
	return render(b.relocate, b.params())
}
