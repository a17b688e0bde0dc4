package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditor_FinishResetsState(t *testing.T) {
	e := Editor{EditorCmd: "true"}

	cmd := e.EditFile("/tmp/notes.json")
	assert.NotNil(t, cmd)
	assert.True(t, e.Editing)

	e, cmd = e.Update(EditingFinished{})
	assert.Nil(t, cmd)
	assert.False(t, e.Editing)
	assert.Empty(t, e.View())
}

func TestEditor_IgnoresOtherMessages(t *testing.T) {
	e := Editor{Editing: true}

	e, _ = e.Update("unrelated")
	assert.True(t, e.Editing)
}
