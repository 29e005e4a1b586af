package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/inkstudio/internal/cli"
	"github.com/inkstudio/inkstudio/pkg/files"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

type testEnv struct {
	t        *testing.T
	messages *bytes.Buffer
}

func setupProject(t *testing.T) *testEnv {
	t.Helper()
	t.Chdir(t.TempDir())
	require.NoError(t, files.InitProjectStructure())

	env := &testEnv{t: t, messages: &bytes.Buffer{}}
	cli.SetStreams(strings.NewReader(""), env.messages, env.messages)
	cli.SetGlobalFlags(false, true, false)
	t.Cleanup(func() {
		cli.SetStreams(os.Stdin, os.Stdout, os.Stderr)
		cli.SetGlobalFlags(false, false, false)
	})
	return env
}

func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	root := &cobra.Command{Use: "inkstudio", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("output", "o", "text", "Output format")
	root.AddCommand(NewConceptsCommand())

	if stdin != "" {
		cli.SetStreams(strings.NewReader(stdin), e.messages, e.messages)
	}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) list() ConceptListResult {
	e.t.Helper()
	out, err := e.run("", "concepts", "list", "-o", "json")
	require.NoError(e.t, err)
	var result ConceptListResult
	require.NoError(e.t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestConceptsLifecycle(t *testing.T) {
	env := setupProject(t)

	_, err := env.run("", "concepts", "save", "Koi sleeve",
		"--image", provider.PlaceholderImage(),
		"--style", "traditional",
		"--placement", "forearm",
		"--summary", "A koi swimming upstream.")
	require.NoError(t, err)
	assert.Contains(t, env.messages.String(), "OK: Saved concept 'Koi sleeve'")

	result := env.list()
	require.Equal(t, 1, result.Count)
	item := result.Items[0]
	assert.Equal(t, "Koi sleeve", item.Name)
	assert.Equal(t, "Traditional", item.Style)
	assert.Equal(t, []string{"forearm"}, item.Placements)
	assert.Equal(t, "image/png (68 B)", item.Image)

	t.Run("table output", func(t *testing.T) {
		out, err := env.run("", "concepts", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "Koi sleeve")
	})

	t.Run("filter", func(t *testing.T) {
		out, err := env.run("", "concepts", "list", "-o", "json", "--filter", "placement:forearm")
		require.NoError(t, err)
		assert.Contains(t, out, `"count": 1`)

		out, err = env.run("", "concepts", "list", "-o", "json", "--filter", "style:tribal")
		require.NoError(t, err)
		assert.Contains(t, out, `"count": 0`)

		_, err = env.run("", "concepts", "list", "--filter", "color:red")
		assert.ErrorContains(t, err, "invalid filter")
	})

	t.Run("show", func(t *testing.T) {
		out, err := env.run("", "concepts", "show", item.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "Name:    Koi sleeve")
		assert.Contains(t, out, "Style:   Traditional")
		assert.Contains(t, out, "Placed:  forearm")
		assert.Contains(t, out, "A koi swimming upstream.")
	})

	t.Run("show as yaml", func(t *testing.T) {
		out, err := env.run("", "concepts", "show", item.ID, "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "name: Koi sleeve")
	})

	t.Run("export", func(t *testing.T) {
		_, err := env.run("", "concepts", "show", item.ID, "--export")
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(files.InkStudioDir, files.ExportsDir, "koi-sleeve.png"))
		assert.NoError(t, err)
	})

	t.Run("delete cancelled", func(t *testing.T) {
		_, err := env.run("n\n", "concepts", "delete", item.ID)
		require.NoError(t, err)
		assert.Contains(t, env.messages.String(), "Deletion cancelled")
		assert.Equal(t, 1, env.list().Count)
	})

	t.Run("delete forced", func(t *testing.T) {
		_, err := env.run("", "concepts", "delete", item.ID, "--force")
		require.NoError(t, err)
		assert.Equal(t, 0, env.list().Count)

		_, err = env.run("", "concepts", "show", item.ID)
		assert.ErrorContains(t, err, "concept not found")
	})
}

func TestConceptsSaveValidation(t *testing.T) {
	env := setupProject(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown style", []string{"Rose", "--image", provider.PlaceholderImage(), "--style", "cubist"}, "invalid style"},
		{"blank name", []string{"  ", "--image", provider.PlaceholderImage()}, "concept name cannot be empty"},
		{"missing image file", []string{"Rose", "--image", "nope.png"}, "path does not exist"},
		{"bad placement", []string{"Rose", "--image", provider.PlaceholderImage(), "--placement", "back#1"}, "invalid placement"},
		{"image flag required", []string{"Rose"}, "required flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run("", append([]string{"concepts", "save"}, tt.args...)...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, env.list().Count)
}

func TestConceptsRequireProject(t *testing.T) {
	t.Chdir(t.TempDir())
	env := &testEnv{t: t, messages: &bytes.Buffer{}}

	_, err := env.run("", "concepts", "list")
	assert.ErrorContains(t, err, "inkstudio init")
}

func TestConceptsInvalidOutputFormat(t *testing.T) {
	env := setupProject(t)
	_, err := env.run("", "concepts", "list", "-o", "xml")
	assert.ErrorContains(t, err, "invalid output format")
}
