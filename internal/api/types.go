package api

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- Note ---

// Note is user-authored text attached to a tree node, keyed by the node's uri.
type Note struct {
	URI    string `json:"uri"`
	Course string `json:"course"`
	Body   string `json:"body"`
}

// --- Tree ---

// NodeKind is the breed of a content tree node.
type NodeKind string

const (
	KindForum      NodeKind = "Forum"
	KindFolder     NodeKind = "Folder"
	KindDirectLink NodeKind = "DirectLink"
	KindFile       NodeKind = "File"
)

// UnmarshalJSON accepts both "Forum" and externally tagged {"Folder": {...}}.
func (k *NodeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = NodeKind(s)
		return nil
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("decode node kind: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("decode node kind: want one variant, got %d", len(tagged))
	}
	for name := range tagged {
		*k = NodeKind(name)
	}
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for tree files.
func (k *NodeKind) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*k = NodeKind(value.Value)
		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("decode node kind: want one variant, got %d", len(value.Content)/2)
		}
		*k = NodeKind(value.Content[0].Value)
		return nil
	}
	return fmt.Errorf("decode node kind: unexpected yaml node at line %d", value.Line)
}

// Glyph is a one-character marker for tree rendering.
func (k NodeKind) Glyph() string {
	switch k {
	case KindFolder:
		return "▸"
	case KindForum:
		return "¶"
	case KindDirectLink:
		return "↗"
	case KindFile:
		return "·"
	default:
		return "?"
	}
}

// TreeNode is one item of the external content tree.
type TreeNode struct {
	Title    string     `json:"title" yaml:"title"`
	ID       int        `json:"id" yaml:"id"`
	URI      string     `json:"uri" yaml:"uri"`
	Breed    NodeKind   `json:"breed" yaml:"breed"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
	Parent   int        `json:"parent" yaml:"parent"`
	Visible  bool       `json:"visible" yaml:"visible"`
}

// RefreshResult is the /api/update payload.
type RefreshResult struct {
	Status string    `json:"status"`
	Node   *TreeNode `json:"node,omitempty"`
}

// NeedsCredentials reports whether the backend asked for a login first.
func (r RefreshResult) NeedsCredentials() bool {
	return r.Status == "set_token"
}

// Credentials are forwarded to the backend's content source.
type Credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Persistent bool   `json:"persistent"`
}
