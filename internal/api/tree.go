package api

import (
	"encoding/json"
	"fmt"
)

// --- Tree Methods ---

// GetTree fetches the current content tree root.
func (c *Client) GetTree() (*TreeNode, error) {
	data, err := c.get("/api/node")
	if err != nil {
		return nil, err
	}
	return decode[TreeNode](data)
}

// RefreshTree asks the backend to re-read its content source.
// A "set_token" status is returned as a result, not an error.
func (c *Client) RefreshTree() (*RefreshResult, error) {
	data, err := c.get("/api/update")
	if err != nil {
		return nil, err
	}
	return decode[RefreshResult](data)
}

// SetCredentials hands login credentials to the backend.
func (c *Client) SetCredentials(creds Credentials) error {
	data, err := c.post("/api/credentials", creds)
	if err != nil {
		return err
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "ok" {
		return fmt.Errorf("credentials rejected: %s", payload.Status)
	}
	return nil
}

// --- Tree Helpers ---

// TreeRow is a node paired with its depth for flat rendering.
type TreeRow struct {
	Node  *TreeNode
	Depth int
}

// Walk visits the node and its descendants depth-first.
// Returning false from fn skips the node's children.
func (n *TreeNode) Walk(fn func(node *TreeNode, depth int) bool) {
	if n == nil {
		return
	}
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(node *TreeNode, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for i := range n.Children {
		n.Children[i].walk(fn, depth+1)
	}
}

// Flatten returns the tree in display order. The root itself is omitted
// when it has children, matching how the backend wraps the real items.
func (n *TreeNode) Flatten() []TreeRow {
	if n == nil {
		return nil
	}
	var rows []TreeRow
	skipRoot := len(n.Children) > 0
	n.Walk(func(node *TreeNode, depth int) bool {
		if skipRoot && node == n {
			return true
		}
		d := depth
		if skipRoot {
			d--
		}
		rows = append(rows, TreeRow{Node: node, Depth: d})
		return true
	})
	return rows
}

// FindURI returns the first node with the given uri.
func (n *TreeNode) FindURI(uri string) *TreeNode {
	var found *TreeNode
	n.Walk(func(node *TreeNode, _ int) bool {
		if found != nil {
			return false
		}
		if node.URI == uri {
			found = node
			return false
		}
		return true
	})
	return found
}
