package runner

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

const stylerExpr = `styler::style_text(readr::read_file(file("stdin")))`

// RStyler formats R code by piping it to styler inside a docker image. The
// call is best effort: whatever styler writes to stdout comes back, even when
// the process exits non-zero. Only a docker invocation that fails to start is
// an error.
type RStyler struct {
	Image     string
	ExtraArgs []string
}

func NewRStyler(image string, extraArgs []string) *RStyler {
	return &RStyler{Image: image, ExtraArgs: extraArgs}
}

func (r *RStyler) Format(code string) (string, error) {
	args := []string{"run", "--rm", "-i"}
	args = append(args, r.ExtraArgs...)
	args = append(args, r.Image, "Rscript", "--vanilla", "-e", stylerExpr)

	cmd := exec.Command("docker", args...)
	cmd.Stdin = strings.NewReader(code)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", &InvocationError{Tool: "docker", Err: err}
		}
	}

	return stdout.String(), nil
}
