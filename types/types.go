package types

type Lifecycle string

const (
	LifecycleCollecting Lifecycle = "collecting"
	LifecycleCompleted  Lifecycle = "completed"
	LifecycleCancelled  Lifecycle = "cancelled"
)

type ValidationType string

const (
	ValidationText   ValidationType = "text"
	ValidationNumber ValidationType = "number"
	ValidationMixed  ValidationType = "mixed"
)

// Known reports whether t is one of the supported validation types.
func (t ValidationType) Known() bool {
	switch t {
	case ValidationText, ValidationNumber, ValidationMixed:
		return true
	default:
		return false
	}
}

// FieldSpec describes one prompt of the guided form.
type FieldSpec struct {
	Key    string         `json:"key" yaml:"key"`
	Prompt string         `json:"prompt" yaml:"prompt"`
	Type   ValidationType `json:"type" yaml:"type"`
}
