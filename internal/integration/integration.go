// Package integration embeds the shell helper functions installed by
// --init.
package integration

import (
	"bytes"
	_ "embed"
	"fmt"
	"os/exec"
	"path/filepath"
	"text/template"
)

//go:embed zsh-fzf.sh
var script string

// Render fills the embedded zsh snippet with the locally resolved shell
// path and returns it ready to eval.
func Render() (string, error) {
	zsh, err := exec.LookPath("zsh")
	if err != nil {
		return "", fmt.Errorf("locating zsh: %w", err)
	}

	tmpl, err := template.New("init").Parse(script)
	if err != nil {
		return "", fmt.Errorf("parsing init script: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ ZSH string }{ZSH: filepath.ToSlash(zsh)}); err != nil {
		return "", fmt.Errorf("rendering init script: %w", err)
	}

	return buf.String(), nil
}
