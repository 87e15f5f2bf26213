package executor

import "strings"

// Action names the model may select.
const (
	ActionCreateDraft = "create_draft"
	ActionOpenFile    = "open_file"
	ActionListFiles   = "list_files"
	ActionCloseFile   = "close_file"
	ActionNone        = "none"

	// ActionCreatePostFile is the older name for create_draft; decisions
	// using it are normalised on parse.
	ActionCreatePostFile = "create_post_file"
)

// Argument names and their literal defaults.
const (
	ArgTitle            = "title"
	ArgTopicDescription = "topic_description"
	ArgFilename         = "filename"

	DefaultTitle = "LinkedIn Post"
	LastFile     = "last"
)


// Decision is the model's choice of action for one utterance.
type Decision struct {
	Action  string            `json:"tool"`
	Args    map[string]string `json:"args"`
	Message string            `json:"message"`
}

// Arg returns the named argument, or fallback when the model omitted it.
// A present but empty value is returned as is.
func (d Decision) Arg(name, fallback string) string {
	if v, ok := d.Args[name]; ok {
		return v
	}
	return fallback
}

// NormalizeAction maps aliases onto canonical action names. An empty name
// becomes none; anything unknown is returned unchanged.
func NormalizeAction(name string) string {
	switch strings.TrimSpace(name) {
	case "":
		return ActionNone
	case ActionCreatePostFile:
		return ActionCreateDraft
	default:
		return name
	}
}
