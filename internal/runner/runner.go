// Package runner executes code blocks inside the isolated per-language
// docker images and captures their combined output.
package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/lost-stats/lostmd/internal/mdcode"
)

const (
	pythonImageEnv = "LOSTMD_PYTHON_DOCKER_IMAGE"
	rImageEnv      = "LOSTMD_R_DOCKER_IMAGE"
	dockerArgsEnv  = "LOSTMD_DOCKER_ARGS"

	defaultPythonImage = "ghcr.io/lost-stats/docker-images/tester-python:latest"
	defaultRImage      = "ghcr.io/lost-stats/docker-images/tester-r:latest"
)

// DefaultPythonImage returns the docker image Python blocks run in,
// overridable via LOSTMD_PYTHON_DOCKER_IMAGE.
func DefaultPythonImage() string {
	if image := os.Getenv(pythonImageEnv); image != "" {
		return image
	}

	return defaultPythonImage
}

// DefaultRImage returns the docker image R blocks run in, overridable via
// LOSTMD_R_DOCKER_IMAGE.
func DefaultRImage() string {
	if image := os.Getenv(rImageEnv); image != "" {
		return image
	}

	return defaultRImage
}

// ExtraDockerArgs returns additional `docker run` arguments taken from
// LOSTMD_DOCKER_ARGS, split with shell quoting rules.
func ExtraDockerArgs() ([]string, error) {
	value := os.Getenv(dockerArgsEnv)
	if value == "" {
		return nil, nil
	}

	args, err := shlex.Split(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dockerArgsEnv, err)
	}

	return args, nil
}

// InvocationError reports an external toolchain that could not be started at
// all. A toolchain that starts and exits non-zero is not an InvocationError;
// its exit code and output are returned as data.
type InvocationError struct {
	Tool string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Tool, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Outcome records one isolated execution of a code block. The exit code is
// data, not an error; interpreting it is the caller's job.
type Outcome struct {
	Block    mdcode.CodeBlock
	Output   string
	ExitCode int
}

// Executor runs a piece of code and returns its combined stdout/stderr and
// exit code. A non-nil error means the execution could not take place.
type Executor interface {
	Run(code string) (output string, exitCode int, err error)
}

// Execute runs the block on the given executor and pairs it with the result.
func Execute(block mdcode.CodeBlock, executor Executor) (Outcome, error) {
	output, exitCode, err := executor.Run(block.Code)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Block: block, Output: output, ExitCode: exitCode}, nil
}

// DockerExecutor runs code as the final argument of a command inside a
// docker image. Each Run is one `docker run --rm` invocation; nothing is
// shared or reused between calls.
type DockerExecutor struct {
	Image     string
	Command   []string
	ExtraArgs []string
}

// NewPythonExecutor runs Python code with `python -c` inside the image.
func NewPythonExecutor(image string, extraArgs []string) *DockerExecutor {
	return &DockerExecutor{Image: image, Command: []string{"python", "-c"}, ExtraArgs: extraArgs}
}

// NewRExecutor runs R code with `R -e` inside the image.
func NewRExecutor(image string, extraArgs []string) *DockerExecutor {
	return &DockerExecutor{Image: image, Command: []string{"R", "-e"}, ExtraArgs: extraArgs}
}

func (d *DockerExecutor) argv(code string) []string {
	args := []string{"run", "--rm"}
	args = append(args, d.ExtraArgs...)
	args = append(args, d.Image)
	args = append(args, d.Command...)
	args = append(args, code)

	return args
}

func (d *DockerExecutor) Run(code string) (string, int, error) {
	cmd := exec.Command("docker", d.argv(code)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitCode(), nil
		}

		return "", 0, &InvocationError{Tool: "docker", Err: err}
	}

	return string(output), 0, nil
}
