package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleTree = `
title: root
id: 0
uri: ""
breed:
  Folder:
    path: Studium
visible: true
children:
  - title: Analysis I
    id: 1
    uri: il_crs_1
    breed: Forum
    parent: 0
    visible: true
  - title: Blatt 3.pdf
    id: 2
    uri: il_file_2
    breed: File
    parent: 0
    visible: true
`

func writeTree(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}
