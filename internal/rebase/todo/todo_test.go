package todo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepwise.dev/stepwise/internal/rebase/todo"
)

const gitTodo = `pick 1a2b3c4 Step 1: Bootstrap
pick 5d6e7f8 Step 2.1: Add model
exec npm test --silent

# Rebase 0000000..5d6e7f8 onto 0000000 (2 commands)
#
# Commands:
# p, pick <commit> = use commit
`

func TestDecode(t *testing.T) {
	t.Run("splits operations into method, hash and message", func(t *testing.T) {
		ops, ok := todo.Decode(gitTodo)
		require.True(t, ok)
		require.Len(t, ops, 8)

		assert.Equal(t, todo.Pick, ops[0].Method)
		assert.Equal(t, "1a2b3c4", ops[0].Hash)
		assert.Equal(t, "Step 1: Bootstrap", ops[0].Message)

		assert.Equal(t, todo.Exec, ops[2].Method)
		assert.Empty(t, ops[2].Hash)
		assert.Equal(t, "npm test --silent", ops[2].Message)
	})

	t.Run("keeps comments and blanks verbatim in place", func(t *testing.T) {
		ops, ok := todo.Decode(gitTodo)
		require.True(t, ok)

		assert.True(t, ops[3].IsVerbatim())
		assert.Equal(t, "", ops[3].Raw)
		assert.True(t, ops[4].IsVerbatim())
		assert.Equal(t, "# Rebase 0000000..5d6e7f8 onto 0000000 (2 commands)", ops[4].Raw)
	})

	t.Run("reports nothing to transform without operation lines", func(t *testing.T) {
		for _, text := range []string{"", "\n", "noop\n", "# only a comment\n\n"} {
			ops, ok := todo.Decode(text)
			assert.False(t, ok, text)
			assert.Nil(t, ops)
		}
	})

	t.Run("short lines are not operations", func(t *testing.T) {
		ops, ok := todo.Decode("pick 1a2b3c4 Step 1: X\nexec ls\nbreak\n")
		require.True(t, ok)
		assert.False(t, ops[0].IsVerbatim())
		assert.True(t, ops[1].IsVerbatim())
		assert.True(t, ops[2].IsVerbatim())
	})
}

func TestEncode(t *testing.T) {
	t.Run("round-trips git output byte for byte", func(t *testing.T) {
		ops, ok := todo.Decode(gitTodo)
		require.True(t, ok)
		assert.Equal(t, gitTodo, todo.Encode(ops))
	})

	t.Run("always ends with a single newline", func(t *testing.T) {
		ops, ok := todo.Decode("pick 1a2b3c4 Step 1: X")
		require.True(t, ok)
		assert.Equal(t, "pick 1a2b3c4 Step 1: X\n", todo.Encode(ops))
	})

	t.Run("writes exec operations without a hash", func(t *testing.T) {
		assert.Equal(t, "exec make build\n", todo.Encode(todo.Todo{todo.NewExec("make build")}))
	})

	t.Run("re-decoding encoded output is stable", func(t *testing.T) {
		inputs := []string{
			gitTodo,
			"pick 1a2b3c4 Step 1: X\nedit 2b3c4d5 Step 2: Y\n",
			"pick 1a2b3c4  two  spaces  kept\n",
			"reword 1a2b3c4\n",
		}
		for _, input := range inputs {
			first, ok := todo.Decode(input)
			require.True(t, ok)
			second, ok := todo.Decode(todo.Encode(first))
			require.True(t, ok)
			assert.Equal(t, first, second, input)
		}
	})
}

func TestOperation(t *testing.T) {
	t.Run("subject strips the comment marker newer git adds", func(t *testing.T) {
		ops, ok := todo.Decode("pick 1a2b3c4 # Step 3: Z\n")
		require.True(t, ok)
		assert.Equal(t, "Step 3: Z", ops[0].Subject())
	})

	t.Run("exec operations have no subject", func(t *testing.T) {
		assert.Empty(t, todo.NewExec("echo Step 1: no").Subject())
	})

	t.Run("abbreviated methods are commit methods", func(t *testing.T) {
		ops, ok := todo.Decode("p 1a2b3c4 Step 3: Z\n")
		require.True(t, ok)
		assert.True(t, ops[0].Method.TakesCommit())
		assert.Equal(t, todo.Pick, ops[0].Method.Canonical())
		assert.Equal(t, "1a2b3c4", ops[0].Hash)
	})
}

func TestFirst(t *testing.T) {
	ops, ok := todo.Decode("# leading comment\npick 1a2b3c4 Step 1: X\n")
	require.True(t, ok)
	assert.Equal(t, 1, ops.First())
	assert.Equal(t, []int{1}, ops.Operations())
	assert.Equal(t, -1, todo.Todo{{Raw: "#"}}.First())
}
