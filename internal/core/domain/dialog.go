package domain

import "encoding/json"

// DialogMode tags the variant held by DialogState.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreating
	DialogEditing
)

func (m DialogMode) String() string {
	switch m {
	case DialogCreating:
		return "creating"
	case DialogEditing:
		return "editing"
	default:
		return "closed"
	}
}

// DialogState is Closed | Creating | Editing(id). The edit target exists only
// in the Editing variant, so an open dialog can never carry a stale target.
type DialogState struct {
	mode   DialogMode
	target string
}

func Closed() DialogState   { return DialogState{mode: DialogClosed} }
func Creating() DialogState { return DialogState{mode: DialogCreating} }

func Editing(id string) DialogState {
	return DialogState{mode: DialogEditing, target: id}
}

func (d DialogState) Mode() DialogMode { return d.mode }

func (d DialogState) IsOpen() bool { return d.mode != DialogClosed }

// Target returns the edit target; ok is false unless the dialog is editing.
func (d DialogState) Target() (id string, ok bool) {
	return d.target, d.mode == DialogEditing
}

// IsEditing reports whether the dialog is editing the given entity.
func (d DialogState) IsEditing(id string) bool {
	return d.mode == DialogEditing && d.target == id
}

func (d DialogState) MarshalJSON() ([]byte, error) {
	out := struct {
		Mode   string `json:"mode"`
		Target string `json:"target,omitempty"`
	}{Mode: d.mode.String(), Target: d.target}
	return json.Marshal(out)
}
