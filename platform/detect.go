package platform

import (
	"os/exec"
	"runtime"
)

// DetectedProgram is one installed program found on PATH.
type DetectedProgram struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsDefault bool   `json:"is_default"`
}

// DetectedPrograms groups detection results per abstract action, for the
// settings screen to offer as Custom-mode choices.
type DetectedPrograms struct {
	Terminals    []DetectedProgram `json:"terminals"`
	Browsers     []DetectedProgram `json:"browsers"`
	FileManagers []DetectedProgram `json:"file_managers"`
	TextEditors  []DetectedProgram `json:"text_editors"`
}

var detectionLists = map[string]map[string][]string{
	"linux": {
		"terminals":     {"konsole", "gnome-terminal", "alacritty", "kitty", "xfce4-terminal", "tilix", "xterm"},
		"browsers":      {"firefox", "google-chrome", "chromium", "brave-browser"},
		"file_managers": {"nautilus", "dolphin", "thunar", "pcmanfm", "nemo"},
		"text_editors":  {"code", "subl", "gedit", "kate", "nvim", "vim"},
	},
	"windows": {
		"terminals":     {"wt", "powershell", "cmd"},
		"browsers":      {"msedge", "chrome", "firefox"},
		"file_managers": {"explorer"},
		"text_editors":  {"code", "notepad++", "notepad"},
	},
}

// DetectPrograms probes PATH for known programs on the running OS. The first
// hit in each category is flagged as the default. An unsupported OS yields
// empty lists rather than an error.
func DetectPrograms() DetectedPrograms {
	lists, ok := detectionLists[runtime.GOOS]
	if !ok {
		return DetectedPrograms{
			Terminals:    []DetectedProgram{},
			Browsers:     []DetectedProgram{},
			FileManagers: []DetectedProgram{},
			TextEditors:  []DetectedProgram{},
		}
	}
	return DetectedPrograms{
		Terminals:    lookupAll(lists["terminals"]),
		Browsers:     lookupAll(lists["browsers"]),
		FileManagers: lookupAll(lists["file_managers"]),
		TextEditors:  lookupAll(lists["text_editors"]),
	}
}

func lookupAll(names []string) []DetectedProgram {
	found := []DetectedProgram{}
	for _, name := range names {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		found = append(found, DetectedProgram{
			Name:      name,
			Path:      path,
			IsDefault: len(found) == 0,
		})
	}
	return found
}
