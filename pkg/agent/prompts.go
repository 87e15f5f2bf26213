package agent

import (
	"embed"

	"draftdesk/pkg/executor"
	"draftdesk/pkg/prompt"
)

//go:embed prompts/*.tmpl
var builtinPrompts embed.FS

const (
	resolverPromptName     = "prompts/resolver.tmpl"
	authorSystemPromptName = "prompts/author_system.tmpl"
	authorUserPromptName   = "prompts/author_user.tmpl"
)

// loadTemplate opens path from disk, or the named built-in prompt when path
// is empty.
func loadTemplate(path, builtin string) (*prompt.Template, error) {
	if path != "" {
		return prompt.NewTemplate(path, nil)
	}
	return prompt.NewTemplateFS(builtinPrompts, builtin, nil)
}

type resolverPromptData struct {
	CreateDraft string
	OpenFile    string
	ListFiles   string
	CloseFile   string
	None        string
	Last        string
}

func defaultResolverPromptData() resolverPromptData {
	return resolverPromptData{
		CreateDraft: executor.ActionCreateDraft,
		OpenFile:    executor.ActionOpenFile,
		ListFiles:   executor.ActionListFiles,
		CloseFile:   executor.ActionCloseFile,
		None:        executor.ActionNone,
		Last:        executor.LastFile,
	}
}

type authorPromptData struct {
	Title       string
	Description string
	Tone        string
}
