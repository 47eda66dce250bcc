package edicli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetApp(t *testing.T) {
	app := GetApp()
	assert.Equal(t, Name, app.Name)
	assert.Equal(t, Usage, app.Usage)

	var names []string
	for _, command := range app.Commands {
		names = append(names, command.Name)
	}
	assert.Contains(t, names, "import-edi-directory")
	assert.Contains(t, names, "import-members")
	assert.Contains(t, names, "import-rx-benefit")
	assert.Contains(t, names, "import-all")
}
