package doctor

import (
	"context"
	"os/exec"

	"github.com/colonyops/todonext/pkg/executil"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that the editor and the system opener are available on
// $PATH.
type ToolsCheck struct {
	editor string
	opener string
}

// NewToolsCheck creates a new tools check for the given editor command.
func NewToolsCheck(editor string) *ToolsCheck {
	return &ToolsCheck{editor: editor, opener: executil.OpenCommand()}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	// the editor is required by edit and config
	editor, _ := executil.SplitCommand(c.editor)
	if path, err := lookPathFunc(editor); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "editor " + editor,
			Status: StatusFail,
			Detail: "not found on PATH",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "editor " + editor,
			Status: StatusPass,
			Detail: path,
		})
	}

	// the opener is only used by call
	if path, err := lookPathFunc(c.opener); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.opener,
			Status: StatusWarn,
			Detail: "not found on PATH (required for opening attachments)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  c.opener,
			Status: StatusPass,
			Detail: path,
		})
	}

	return result
}
