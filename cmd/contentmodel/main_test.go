package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	for _, key := range []string{"CONTENTMODEL_OUTPUT", "CONTENTMODEL_MINIFY", "CONTENTMODEL_INDENT_PX", "CONTENTMODEL_LOG_FILE", "CONTENTMODEL_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("CONTENTMODEL_LOG_LEVEL", "error")

	dir := t.TempDir()
	file := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	exec := func(t *testing.T, stdin string, args ...string) string {
		var out bytes.Buffer
		args = append([]string{"-config", filepath.Join(dir, "none.toml")}, args...)
		require.NoError(t, run(context.Background(), args, strings.NewReader(stdin), &out))
		return out.String()
	}

	t.Run("html to markdown", func(t *testing.T) {
		out := exec(t, "", "-output", "markdown", file("a.html", `<p>hello <b>world</b></p>`))
		assert.Contains(t, out, "hello **world**")
	})

	t.Run("source only", func(t *testing.T) {
		word := `<html xmlns:w="urn:schemas-microsoft-com:office:word"><body><p>x</p></body></html>`
		assert.Equal(t, "wordDesktop\n", exec(t, word, "-source-only", "-"))
		assert.Equal(t, "default\n", exec(t, "<div>x</div>", "-source-only", "-"))
	})

	t.Run("markdown to html", func(t *testing.T) {
		out := exec(t, "", "-minify", file("b.md", "# Title\n\nsome *text*\n"))
		assert.Contains(t, out, "<h1")
		assert.Contains(t, out, "Title")
		assert.Contains(t, out, "text")
	})

	t.Run("notion json", func(t *testing.T) {
		out := exec(t, "", "-output", "notion", file("c.md", "* one\n* two\n"))
		var blocks []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &blocks))
		require.Len(t, blocks, 2)
		assert.Contains(t, blocks[0], "bulleted_list_item")
	})

	t.Run("model json", func(t *testing.T) {
		out := exec(t, "", "-output", "json", file("d.md", "para\n"))
		assert.True(t, json.Valid([]byte(out)))
		assert.Contains(t, out, `"para"`)
	})

	t.Run("indent", func(t *testing.T) {
		out := exec(t, "", "-indent", "2", file("e.md", "para\n"))
		assert.Contains(t, out, "80px")
	})

	t.Run("errors", func(t *testing.T) {
		var out bytes.Buffer
		err := run(context.Background(), []string{"-config", filepath.Join(dir, "none.toml")}, strings.NewReader(""), &out)
		assert.ErrorIs(t, err, flag.ErrHelp)

		err = run(context.Background(), []string{"-config", filepath.Join(dir, "none.toml"), "-output", "pdf", file("f.md", "x")}, strings.NewReader(""), &out)
		assert.Error(t, err)

		err = run(context.Background(), []string{"-config", filepath.Join(dir, "none.toml"), "-"}, strings.NewReader("  "), &out)
		assert.Error(t, err)
	})
}
