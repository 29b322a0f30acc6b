package transfer_test

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filo/pkg/fsys"
	"github.com/walteh/filo/pkg/transfer"
)

func TestUndoRestoresFile(t *testing.T) {
	mem := fsys.NewMemFS()
	mem.Seed("/sorted/2024/photo.jpg", []byte("image"))

	exec := transfer.New(mem)
	err := exec.Undo(testCtx(t), "/inbox/photo.jpg", "/sorted/2024/photo.jpg")
	require.NoError(t, err)

	data, ok := mem.Content("/inbox/photo.jpg")
	require.True(t, ok)
	assert.Equal(t, []byte("image"), data)
	_, ok = mem.Content("/sorted/2024/photo.jpg")
	assert.False(t, ok)
}

func TestUndoCreatesMissingOriginalDirectory(t *testing.T) {
	mem := fsys.NewMemFS()
	mem.Seed("/sorted/doc.pdf", []byte("pdf"))

	exec := transfer.New(mem)
	err := exec.Undo(testCtx(t), "/inbox/deep/nested/doc.pdf", "/sorted/doc.pdf")
	require.NoError(t, err)

	_, ok := mem.Content("/inbox/deep/nested/doc.pdf")
	assert.True(t, ok)
}

func TestUndoRefusesWhenDestinationGone(t *testing.T) {
	mem := fsys.NewMemFS()

	exec := transfer.New(mem)
	err := exec.Undo(testCtx(t), "/inbox/a.txt", "/sorted/a.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer exists at destination")
}

func TestUndoRefusesWhenOriginalLocationOccupied(t *testing.T) {
	mem := fsys.NewMemFS()
	mem.Seed("/sorted/a.txt", []byte("moved"))
	mem.Seed("/inbox/a.txt", []byte("newcomer"))

	exec := transfer.New(mem)
	err := exec.Undo(testCtx(t), "/inbox/a.txt", "/sorted/a.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists at original location")

	// The newcomer at the original location is untouched.
	data, _ := mem.Content("/inbox/a.txt")
	assert.Equal(t, []byte("newcomer"), data)
}

func TestUndoFallsBackAcrossDevices(t *testing.T) {
	mem := fsys.NewMemFS()
	mem.Seed("/sorted/a.txt", []byte("data"))
	mem.RenameErr = syscall.EXDEV

	exec := transfer.New(mem)
	err := exec.Undo(testCtx(t), "/inbox/a.txt", "/sorted/a.txt")
	require.NoError(t, err)

	_, ok := mem.Content("/inbox/a.txt")
	assert.True(t, ok)
	_, ok = mem.Content("/sorted/a.txt")
	assert.False(t, ok)
}

func TestUndoAllContinuesPastFailures(t *testing.T) {
	mem := fsys.NewMemFS()
	mem.Seed("/sorted/a.txt", []byte("a"))
	// b has no destination file, so its undo must fail.
	mem.Seed("/sorted/c.txt", []byte("c"))

	exec := transfer.New(mem)
	results := exec.UndoAll(testCtx(t), []transfer.UndoPair{
		{Source: "/inbox/a.txt", Destination: "/sorted/a.txt"},
		{Source: "/inbox/b.txt", Destination: "/sorted/b.txt"},
		{Source: "/inbox/c.txt", Destination: "/sorted/c.txt"},
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0])
	assert.Error(t, results[1])
	assert.NoError(t, results[2])

	_, ok := mem.Content("/inbox/a.txt")
	assert.True(t, ok)
	_, ok = mem.Content("/inbox/c.txt")
	assert.True(t, ok)
}
