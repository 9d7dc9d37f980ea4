// Package proposal adapts an external fix-proposal generator. Which model or
// backend the generator uses is entirely outside this program; this adapter
// only hands it one resolved rule at a time.
package proposal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ecfix/ecfix/internal/domain"
)

// CommandEnv names the environment variable holding the proposal command.
// Backend and model selection are the command's own concern; whatever
// variables it needs are inherited from the environment.
const CommandEnv = "ECFIX_PROPOSAL_CMD"

// CommandDriver implements domain.ProposalGenerator by running an external
// command with the ProposalInput as JSON on stdin and reading the proposal
// text from stdout.
type CommandDriver struct {
	command string
}

func NewCommandDriver(command string) *CommandDriver {
	return &CommandDriver{command: command}
}

// FromEnv builds a driver from ECFIX_PROPOSAL_CMD. ok is false when the
// variable is unset, meaning proposal generation is disabled for the run.
func FromEnv() (*CommandDriver, bool) {
	command := strings.TrimSpace(os.Getenv(CommandEnv))
	if command == "" {
		return nil, false
	}
	return NewCommandDriver(command), true
}

func (d *CommandDriver) Generate(in domain.ProposalInput) (string, error) {
	payload, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding proposal input: %w", err)
	}

	cmd := exec.Command("sh", "-c", d.command)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("proposal command failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("proposal command failed: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
