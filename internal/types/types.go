// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type CommandRequest struct {
	Command string `json:"command,optional"`
	Session string `json:"session,optional"`
}

type CommandResponse struct {
	Log     []string `json:"log"`
	Session string   `json:"session"`
}

type DraftsResponse struct {
	Files []string `json:"files"`
}
