package analyzer

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/testscaffold/pkg/parser"
)

// parseSource parses an inline fixture with the grammar matching filePath
// and returns the root node plus the source bytes.
func parseSource(t *testing.T, source, filePath string) (*ts.Node, []byte) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := parser.NewManager(logger)
	t.Cleanup(func() { manager.Close() })

	tree, err := manager.ParseFile([]byte(source), filePath)
	require.NoError(t, err, "fixture should parse")
	t.Cleanup(func() { tree.Close() })

	root := tree.RootNode()
	require.False(t, root.HasError(), "fixture should parse cleanly: %s", source)
	return root, []byte(source)
}

// firstOfKind returns the first node of the given kind in depth-first order.
func firstOfKind(t *testing.T, root *ts.Node, kind string) *ts.Node {
	t.Helper()

	var found *ts.Node
	Walk(root, func(n *ts.Node) bool {
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	require.NotNil(t, found, "fixture should contain a %s node", kind)
	return found
}
