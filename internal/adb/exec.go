package adb

import (
	"context"
	"os/exec"
)

var runExecCommand = func(ctx context.Context, name string, args ...string) commander {
	return realCommander{cmd: exec.CommandContext(ctx, name, args...)}
}

type commander interface {
	Run() error
	Output() ([]byte, error)
	Start() error
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

// Start launches the process with stdio attached to the null device and reaps
// it in the background.
func (r realCommander) Start() error {
	if err := r.cmd.Start(); err != nil {
		return err
	}
	go func() { _ = r.cmd.Wait() }()
	return nil
}
